// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package command

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs string
	}{
		{name: "bare command", input: "list", wantName: "list", wantArgs: ""},
		{name: "command with arg", input: "delete lobby", wantName: "delete", wantArgs: "lobby"},
		{name: "internal whitespace preserved", input: "modify some  spaced   name", wantName: "modify", wantArgs: "some  spaced   name"},
		{name: "surrounding whitespace trimmed", input: "  list  ", wantName: "list", wantArgs: ""},
		{name: "tab separator", input: "delete\tlobby", wantName: "delete", wantArgs: "lobby"},
		{name: "leading arg whitespace trimmed", input: "delete    lobby", wantName: "delete", wantArgs: "lobby"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, parsed.Name)
			assert.Equal(t, tt.wantArgs, parsed.Args)
			assert.Equal(t, tt.input, parsed.Raw)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t", " \t "} {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)

		oopsErr, ok := oops.AsOops(err)
		require.True(t, ok)
		assert.Equal(t, CodeEmptyInput, oopsErr.Code())
	}
}
