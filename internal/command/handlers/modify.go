// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package handlers

import (
	"context"
	"strings"

	"github.com/gachapoint/gachapoint/internal/command"
)

// ModifyHandler starts a container rebind for the named draw-point. The
// actor's next right click on a container commits the bind.
func ModifyHandler(ctx context.Context, exec *command.Execution) error {
	name := strings.TrimSpace(exec.Args)
	if name == "" {
		return command.ErrInvalidArgs("modify", "modify <name>")
	}
	return exec.Services.Coordinator.BeginBind(ctx, exec.Actor, name)
}
