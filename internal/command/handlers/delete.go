// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/gachapoint/gachapoint/internal/command"
)

// DeleteHandler removes the named draw-point from the registry.
func DeleteHandler(ctx context.Context, exec *command.Execution) error {
	name := strings.TrimSpace(exec.Args)
	if name == "" {
		return command.ErrInvalidArgs("delete", "delete <name>")
	}
	if err := exec.Services.Coordinator.Delete(ctx, name); err != nil {
		return err
	}
	writeOutput(ctx, exec, "delete", exec.Services.Messages.Deleted)
	return nil
}
