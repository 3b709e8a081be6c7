// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package economy provides an in-memory implementation of the economy
// collaborator for the demo server and tests. A production deployment
// injects the host's real ledger instead.
package economy

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

// MemoryLedger is a mutex-guarded balance table.
type MemoryLedger struct {
	symbol string

	mu       sync.RWMutex
	balances map[ulid.ULID]int64
}

// NewMemoryLedger creates an empty ledger. symbol is the display currency
// suffix, e.g. "G".
func NewMemoryLedger(symbol string) *MemoryLedger {
	return &MemoryLedger{
		symbol:   symbol,
		balances: make(map[ulid.ULID]int64),
	}
}

// Deposit credits an actor. Used to seed demo and test balances.
func (l *MemoryLedger) Deposit(actor ulid.ULID, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[actor] += amount
}

// Balance returns an actor's current balance.
func (l *MemoryLedger) Balance(actor ulid.ULID) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[actor]
}

// Has reports whether the actor's balance covers amount.
func (l *MemoryLedger) Has(actor ulid.ULID, amount int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[actor] >= amount
}

// Withdraw debits amount from the actor. The returned error message is
// shown to the actor verbatim on failure.
func (l *MemoryLedger) Withdraw(actor ulid.ULID, amount int64) error {
	if amount < 0 {
		return oops.With("amount", amount).Errorf("Cannot withdraw a negative amount.")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[actor] < amount {
		return oops.With("actor", actor.String()).
			With("amount", amount).
			Errorf("Insufficient funds.")
	}
	l.balances[actor] -= amount
	return nil
}

// Format renders an amount with the configured currency suffix.
func (l *MemoryLedger) Format(amount int64) string {
	return fmt.Sprintf("%d %s", amount, l.symbol)
}

// Compile-time interface check.
var _ gacha.Economy = (*MemoryLedger)(nil)
