// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrDrawPointNotFound_IsSentinel(t *testing.T) {
	err := ErrDrawPointNotFound("lobby")
	assert.True(t, errors.Is(err, ErrNotFound), "wrapped sentinel should survive")
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}

func TestPlayerMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "Something went wrong. Try again.",
		},
		{
			name: "plain error without code",
			err:  errors.New("pq: connection refused"),
			want: "Something went wrong. Try again.",
		},
		{
			name: "validation carries its message",
			err:  ErrValidation("Price cannot be negative."),
			want: "Price cannot be negative.",
		},
		{
			name: "conflict carries its message",
			err:  ErrConflict("It is already registered.", nil),
			want: "It is already registered.",
		},
		{
			name: "economy carries the provider message",
			err:  ErrEconomy("You do not have enough money.", nil),
			want: "You do not have enough money.",
		},
		{
			name: "inventory carries its message",
			err:  ErrInventory("Nothing found this time."),
			want: "Nothing found this time.",
		},
		{
			name: "not found names the record",
			err:  ErrDrawPointNotFound("lobby"),
			want: "Record not found. gacha_name=lobby",
		},
		{
			name: "storage detail is hidden from the actor",
			err:  ErrStorage("list draw-points", errors.New("pq: relation missing")),
			want: "Storage error. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerMessage(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeStorage, ErrorCode(ErrStorage("op", errors.New("boom"))))
	assert.Equal(t, "INTERNAL", ErrorCode(errors.New("boom")))
	assert.Equal(t, "INTERNAL", ErrorCode(nil))
}
