// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a draw-point does not exist.
var ErrNotFound = errors.New("draw-point not found")

// Error codes for the transition-level taxonomy. Every transition converts
// its failure into one of these before reporting to the actor; unexpected
// errors fall through as storage/internal failures and never terminate the
// host process.
const (
	CodeValidation = "VALIDATION"
	CodeConflict   = "CONFLICT"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE"
	CodeEconomy    = "ECONOMY"
	CodeInventory  = "INVENTORY"
)

// ErrValidation creates a validation error with an actor-facing message.
func ErrValidation(message string) error {
	return oops.Code(CodeValidation).
		With("message", message).
		Errorf("%s", message)
}

// ErrConflict creates a conflict error for duplicate names or coordinates.
func ErrConflict(message string, cause error) error {
	builder := oops.Code(CodeConflict).With("message", message)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("%s", message)
}

// ErrDrawPointNotFound creates a not-found error for the named draw-point.
func ErrDrawPointNotFound(name string) error {
	return oops.Code(CodeNotFound).
		With("gacha_name", name).
		Wrap(ErrNotFound)
}

// ErrStorage wraps a storage-layer failure.
func ErrStorage(operation string, cause error) error {
	return oops.Code(CodeStorage).
		With("operation", operation).
		Wrap(cause)
}

// ErrEconomy creates an economy error carrying the provider's message.
func ErrEconomy(message string, cause error) error {
	builder := oops.Code(CodeEconomy).With("message", message)
	if cause != nil {
		return builder.Wrap(cause)
	}
	return builder.Errorf("%s", message)
}

// ErrInventory creates an inventory error (missing container, empty draw).
func ErrInventory(message string) error {
	return oops.Code(CodeInventory).
		With("message", message).
		Errorf("%s", message)
}

// PlayerMessage extracts the terse actor-facing message from an error.
// Errors without a taxonomy code collapse into a generic internal-error
// string; the full detail is logged at the transition boundary instead.
func PlayerMessage(err error) string {
	if err == nil {
		return "Something went wrong. Try again."
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "Something went wrong. Try again."
	}

	msg, _ := oopsErr.Context()["message"].(string)
	switch oopsErr.Code() {
	case CodeValidation, CodeConflict, CodeEconomy, CodeInventory:
		if msg != "" {
			return msg
		}
		return "Something went wrong. Try again."
	case CodeNotFound:
		if name, ok := oopsErr.Context()["gacha_name"].(string); ok && name != "" {
			return "Record not found. gacha_name=" + name
		}
		return "Record not found."
	case CodeStorage:
		return "Storage error. Please try again later."
	default:
		return "Something went wrong. Try again."
	}
}

// ErrorCode returns the taxonomy code of an error, or "INTERNAL" when the
// error carries none.
func ErrorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok && code != "" {
			return code
		}
	}
	return "INTERNAL"
}
