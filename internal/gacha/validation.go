// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"regexp"
	"strconv"
)

// MaxNameLength bounds user-chosen draw-point names.
const MaxNameLength = 64

// nameRegex matches one or more ASCII letters, digits, or underscores.
var nameRegex = regexp.MustCompile(`^[0-9a-zA-Z_]+$`)

// ValidateName checks a user-chosen draw-point name.
func ValidateName(name string) error {
	if name == "" {
		return ErrValidation("Please enter the draw-point name: letters, digits, and underscore only.")
	}
	if len(name) > MaxNameLength {
		return ErrValidation("Draw-point name is too long.")
	}
	if !nameRegex.MatchString(name) {
		return ErrValidation("Please enter the draw-point name: letters, digits, and underscore only.")
	}
	return nil
}

// ParsePrice parses a price line into a non-negative currency amount.
func ParsePrice(s string) (int64, error) {
	price, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrValidation("Please enter the price as a whole number.")
	}
	if price < 0 {
		return 0, ErrValidation("Price cannot be negative.")
	}
	return price, nil
}
