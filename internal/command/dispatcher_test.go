// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gachapoint/gachapoint/internal/access"
)

type allowAllAccess struct{}

func (allowAllAccess) Check(string, string) bool { return true }

type denyAllAccess struct{}

func (denyAllAccess) Check(string, string) bool { return false }

func newExecution() *Execution {
	return &Execution{
		Actor:    ulid.Make(),
		Output:   &bytes.Buffer{},
		Services: &Services{},
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected an oops error, got %v", err)
	assert.Equal(t, code, oopsErr.Code())
}

func TestNewDispatcher_RequiresCollaborators(t *testing.T) {
	_, err := NewDispatcher(nil, allowAllAccess{})
	assert.ErrorIs(t, err, ErrNilRegistry)

	_, err = NewDispatcher(NewRegistry(), nil)
	assert.ErrorIs(t, err, ErrNilAccessControl)
}

func TestDispatch_NilServices(t *testing.T) {
	d, err := NewDispatcher(NewRegistry(), allowAllAccess{})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "list", &Execution{Actor: ulid.Make()})
	assert.ErrorIs(t, err, ErrNilServices)
}

func TestDispatch_EmptyInput(t *testing.T) {
	d, err := NewDispatcher(NewRegistry(), allowAllAccess{})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "   ", newExecution())
	require.Error(t, err)
	assertCode(t, err, CodeEmptyInput)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d, err := NewDispatcher(NewRegistry(), allowAllAccess{})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "frobnicate", newExecution())
	require.Error(t, err)
	assertCode(t, err, CodeUnknownCommand)
}

func TestDispatch_PermissionDenied(t *testing.T) {
	reg := NewRegistry()
	called := false
	require.NoError(t, reg.Register(Entry{
		Name:        "delete",
		Handler:     func(context.Context, *Execution) error { called = true; return nil },
		Permissions: []string{access.PermissionDelete},
	}))

	d, err := NewDispatcher(reg, denyAllAccess{})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "delete lobby", newExecution())
	require.Error(t, err)
	assertCode(t, err, CodePermissionDenied)
	assert.False(t, called, "denied commands never reach the handler")
}

func TestDispatch_AllPermissionsRequired(t *testing.T) {
	// Only the first of two required permissions is granted.
	ac := access.NewStaticAccessControl()
	exec := newExecution()
	ac.AssignRole("actor:"+exec.Actor.String(), "player")

	reg := NewRegistry()
	require.NoError(t, reg.Register(Entry{
		Name:        "audit",
		Handler:     nopHandler,
		Permissions: []string{access.PermissionList, access.PermissionOp},
	}))

	d, err := NewDispatcher(reg, ac)
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "audit", exec)
	require.Error(t, err)
	assertCode(t, err, CodePermissionDenied)
}

func TestDispatch_RunsHandlerWithParsedArgs(t *testing.T) {
	reg := NewRegistry()
	var gotArgs string
	require.NoError(t, reg.Register(Entry{
		Name: "modify",
		Handler: func(_ context.Context, exec *Execution) error {
			gotArgs = exec.Args
			return nil
		},
	}))

	d, err := NewDispatcher(reg, allowAllAccess{})
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), "modify lobby prize", newExecution()))
	assert.Equal(t, "lobby prize", gotArgs)
}

func TestDispatch_PropagatesHandlerError(t *testing.T) {
	reg := NewRegistry()
	handlerErr := errors.New("handler boom")
	require.NoError(t, reg.Register(Entry{
		Name:    "boom",
		Handler: func(context.Context, *Execution) error { return handlerErr },
	}))

	d, err := NewDispatcher(reg, allowAllAccess{})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), "boom", newExecution())
	assert.ErrorIs(t, err, handlerErr)
}
