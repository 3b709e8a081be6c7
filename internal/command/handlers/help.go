// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"

	"github.com/gachapoint/gachapoint/internal/command"
)

// HelpHandler returns a handler printing every registered command, one
// per line, sorted by name. Closing over the registry keeps Services free
// of registry plumbing.
func HelpHandler(reg *command.Registry) command.Handler {
	return func(ctx context.Context, exec *command.Execution) error {
		for _, entry := range reg.All() {
			writeOutputf(ctx, exec, "help", "%-16s %s\n", entry.Usage, entry.Help)
		}
		return nil
	}
}
