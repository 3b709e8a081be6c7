// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"

	"github.com/gachapoint/gachapoint/internal/command"
)

// EnableHandler re-arms world event handling after a disable.
func EnableHandler(ctx context.Context, exec *command.Execution) error {
	if err := exec.Services.Lifecycle.Enable(ctx); err != nil {
		return err
	}
	writeOutput(ctx, exec, "enable", "Draw-point handling enabled.")
	return nil
}

// ReloadHandler re-reads configuration and rebuilds the sign cache.
func ReloadHandler(ctx context.Context, exec *command.Execution) error {
	if err := exec.Services.Lifecycle.Reload(ctx); err != nil {
		return err
	}
	writeOutput(ctx, exec, "reload", "Configuration reloaded.")
	return nil
}

// DisableHandler stops world event handling without shutting down.
func DisableHandler(ctx context.Context, exec *command.Execution) error {
	if err := exec.Services.Lifecycle.Disable(ctx); err != nil {
		return err
	}
	writeOutput(ctx, exec, "disable", "Draw-point handling disabled.")
	return nil
}
