// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"
	"fmt"

	"github.com/gachapoint/gachapoint/internal/command"
	"github.com/gachapoint/gachapoint/internal/gacha"
)

// ListHandler prints every draw-point, most recently created first, one
// per line.
func ListHandler(ctx context.Context, exec *command.Execution) error {
	points, err := exec.Services.Coordinator.List(ctx)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		writeOutput(ctx, exec, "list", "No draw-points registered.")
		return nil
	}
	for _, dp := range points {
		writeOutputf(ctx, exec, "list", "%s\n", formatDrawPoint(dp))
	}
	return nil
}

// formatDrawPoint renders the fixed list line for one draw-point. An
// unbound container renders as "unbound".
func formatDrawPoint(dp *gacha.DrawPoint) string {
	chest := "unbound"
	if dp.Bound() {
		chest = fmt.Sprintf("%d,%d,%d", dp.Container.X, dp.Container.Y, dp.Container.Z)
	}
	return fmt.Sprintf("gacha_name:%s world:%s sign[x,y,z]:%d,%d,%d chest[x,y,z]:%s",
		dp.Name, dp.World, dp.Marker.X, dp.Marker.Y, dp.Marker.Z, chest)
}
