// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package command

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gachapoint/gachapoint/internal/access"
)

var tracer = otel.Tracer("gachapoint/command")

// ErrNilServices is returned when an execution carries no services.
var ErrNilServices = errors.New("execution requires services")

// Dispatcher handles command parsing, permission checks, and execution.
type Dispatcher struct {
	registry *Registry
	access   access.AccessControl
}

// NewDispatcher creates a new command dispatcher with the given registry
// and access control. Returns an error if registry or ac is nil.
func NewDispatcher(registry *Registry, ac access.AccessControl) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if ac == nil {
		return nil, ErrNilAccessControl
	}
	return &Dispatcher{
		registry: registry,
		access:   ac,
	}, nil
}

// Dispatch parses and executes a command.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, exec *Execution) (err error) {
	if exec.Services == nil {
		return ErrNilServices
	}

	parsed, err := Parse(input)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", parsed.Name),
			attribute.String("actor.id", exec.Actor.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entry, ok := d.registry.Get(parsed.Name)
	if !ok {
		err = ErrUnknownCommand(parsed.Name)
		return err
	}

	span.SetAttributes(attribute.String("command.source", entry.Source))

	subject := "actor:" + exec.Actor.String()
	for _, perm := range entry.Permissions {
		if !d.access.Check(subject, perm) {
			err = ErrPermissionDenied(parsed.Name, perm)
			return err
		}
	}

	exec.Args = parsed.Args
	err = entry.Handler(ctx, exec)
	if err != nil {
		slog.WarnContext(ctx, "command execution failed",
			"command", parsed.Name,
			"actor", exec.Actor.String(),
			"error", err,
		)
	}
	return err
}
