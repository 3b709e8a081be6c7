// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package handlers implements the built-in draw-point console commands.
package handlers

import (
	"github.com/gachapoint/gachapoint/internal/access"
	"github.com/gachapoint/gachapoint/internal/command"
)

// RegisterAll registers all core command handlers with the registry.
// Panics if any registration fails (indicates a programming error).
func RegisterAll(reg *command.Registry) {
	mustRegister := func(entry command.Entry) {
		if err := reg.Register(entry); err != nil {
			panic("failed to register core command " + entry.Name + ": " + err.Error())
		}
	}

	mustRegister(command.Entry{
		Name:        "list",
		Handler:     ListHandler,
		Permissions: []string{access.PermissionList},
		Help:        "List all registered draw-points",
		Usage:       "list",
		Source:      "core",
	})

	mustRegister(command.Entry{
		Name:        "modify",
		Handler:     ModifyHandler,
		Permissions: []string{access.PermissionModify},
		Help:        "Rebind the reward container of a draw-point",
		Usage:       "modify <name>",
		Source:      "core",
	})

	mustRegister(command.Entry{
		Name:        "delete",
		Handler:     DeleteHandler,
		Permissions: []string{access.PermissionDelete},
		Help:        "Delete a draw-point",
		Usage:       "delete <name>",
		Source:      "core",
	})

	// Lifecycle commands are operator-only.
	mustRegister(command.Entry{
		Name:        "enable",
		Handler:     EnableHandler,
		Permissions: []string{access.PermissionOp},
		Help:        "Enable draw-point event handling",
		Usage:       "enable",
		Source:      "core",
	})

	mustRegister(command.Entry{
		Name:        "reload",
		Handler:     ReloadHandler,
		Permissions: []string{access.PermissionOp},
		Help:        "Reload configuration and rebuild the sign cache",
		Usage:       "reload",
		Source:      "core",
	})

	mustRegister(command.Entry{
		Name:        "disable",
		Handler:     DisableHandler,
		Permissions: []string{access.PermissionOp},
		Help:        "Disable draw-point event handling",
		Usage:       "disable",
		Source:      "core",
	})

	// Help carries no permission: every actor may read the command list.
	mustRegister(command.Entry{
		Name:    "help",
		Handler: HelpHandler(reg),
		Help:    "Show available commands",
		Usage:   "help",
		Source:  "core",
	})
}
