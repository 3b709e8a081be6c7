// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package command

import (
	"errors"

	"github.com/samber/oops"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

// Error codes for command dispatch failures.
const (
	CodeEmptyInput       = "EMPTY_INPUT"
	CodeUnknownCommand   = "UNKNOWN_COMMAND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeInvalidArgs      = "INVALID_ARGS"
)

// Construction errors for the dispatcher.
var (
	ErrNilRegistry      = errors.New("dispatcher requires a registry")
	ErrNilAccessControl = errors.New("dispatcher requires access control")
)

// ErrUnknownCommand creates an error for an unknown command.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrPermissionDenied creates an error for permission denial.
func ErrPermissionDenied(cmd, permission string) error {
	return oops.Code(CodePermissionDenied).
		With("command", cmd).
		With("permission", permission).
		Errorf("permission denied for command %s", cmd)
}

// ErrInvalidArgs creates an error for invalid arguments.
func ErrInvalidArgs(cmd, usage string) error {
	return oops.Code(CodeInvalidArgs).
		With("command", cmd).
		With("usage", usage).
		Errorf("invalid arguments")
}

// PlayerMessage extracts an actor-facing message from a dispatch error.
// Domain errors defer to the gacha package's own message extraction.
func PlayerMessage(err error) string {
	if err == nil {
		return "Something went wrong. Try again."
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "Something went wrong. Try again."
	}

	switch oopsErr.Code() {
	case CodeEmptyInput:
		return "No command provided. Try 'help'."
	case CodeUnknownCommand:
		return "Unknown command. Try 'help'."
	case CodePermissionDenied:
		return "You don't have permission to do that."
	case CodeInvalidArgs:
		if usage, ok := oopsErr.Context()["usage"].(string); ok && usage != "" {
			return "Usage: " + usage
		}
		return "Invalid arguments."
	default:
		return gacha.PlayerMessage(err)
	}
}
