// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gachapoint/gachapoint/internal/command"
)

// logOutputError logs a write failure at warn level with structured
// context. This provides visibility into connection issues without
// failing the command.
func logOutputError(ctx context.Context, cmd, actorID string, bytesWritten int, err error) {
	slog.WarnContext(ctx, "failed to write command output",
		"command", cmd,
		"actor", actorID,
		"bytes_written", bytesWritten,
		"error", err,
	)
}

// writeOutput writes a message to the command output and logs any errors.
func writeOutput(ctx context.Context, exec *command.Execution, cmd, msg string) {
	if n, err := fmt.Fprintln(exec.Output, msg); err != nil {
		logOutputError(ctx, cmd, exec.Actor.String(), n, err)
	}
}

// writeOutputf writes a formatted message to the command output and logs
// any errors.
func writeOutputf(ctx context.Context, exec *command.Execution, cmd, format string, args ...any) {
	if n, err := fmt.Fprintf(exec.Output, format, args...); err != nil {
		logOutputError(ctx, cmd, exec.Actor.String(), n, err)
	}
}
