// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package command

import (
	"strings"

	"github.com/samber/oops"
)

// ParsedCommand is a console line split into its verb and argument tail.
type ParsedCommand struct {
	Name string // verb, the first whitespace-delimited token
	Args string // argument tail with internal whitespace intact
	Raw  string // line as received
}

// Parse splits a console line into verb and argument tail. Draw-point
// names never contain whitespace, so the verb boundary is the first space
// or tab; everything past it is left for the handler to interpret.
func Parse(input string) (*ParsedCommand, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return nil, oops.Code(CodeEmptyInput).Errorf("empty console line")
	}

	name, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, args = line[:i], strings.TrimLeft(line[i+1:], " \t")
	}
	return &ParsedCommand{Name: name, Args: args, Raw: input}, nil
}
