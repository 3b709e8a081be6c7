// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package command provides the console command registry, parser, and
// dispatch system for draw-point administration.
package command

import (
	"context"
	"io"

	"github.com/oklog/ulid/v2"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

// Handler is the function signature for command handlers.
type Handler func(ctx context.Context, exec *Execution) error

// Entry represents a registered command.
type Entry struct {
	Name        string   // canonical name (e.g., "list")
	Handler     Handler  // Go handler
	Permissions []string // ALL required permissions (AND logic)
	Help        string   // short description (one line)
	Usage       string   // usage pattern (e.g., "delete <name>")
	Source      string   // "core" or extension name
}

// Execution provides context for command execution.
type Execution struct {
	Actor     ulid.ULID
	ActorName string
	Args      string
	Output    io.Writer
	Services  *Services
}

// Services provides access to core services for command handlers.
// Handlers MUST NOT store references to services beyond execution.
type Services struct {
	Coordinator *gacha.Coordinator
	Lifecycle   Lifecycle
	Messages    gacha.Messages
}

// Lifecycle controls the running dispatcher wiring. enable re-arms event
// handling after a disable, reload re-reads configuration and rebuilds
// the sign cache, disable stops event handling without shutting the
// process down.
type Lifecycle interface {
	Enable(ctx context.Context) error
	Reload(ctx context.Context) error
	Disable(ctx context.Context) error
}
