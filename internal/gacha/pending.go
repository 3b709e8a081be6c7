// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// PendingBinds tracks the ephemeral actor → draw-point-name association
// between a bind-intent command and the qualifying container interaction.
// The two steps are human-paced with arbitrary world interaction in
// between, so the association must survive across event dispatches.
//
// At most one pending bind exists per actor; a new Begin overwrites the
// old one. Entries hold no durable state and are cleared when the actor's
// session ends.
type PendingBinds struct {
	mu      sync.RWMutex
	pending map[ulid.ULID]string
}

// NewPendingBinds creates an empty tracker.
func NewPendingBinds() *PendingBinds {
	return &PendingBinds{
		pending: make(map[ulid.ULID]string),
	}
}

// Begin records a pending bind for the actor, overwriting any existing one.
func (p *PendingBinds) Begin(actor ulid.ULID, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[actor] = name
}

// Peek returns the actor's pending draw-point name without clearing it.
func (p *PendingBinds) Peek(actor ulid.ULID) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	name, ok := p.pending[actor]
	return name, ok
}

// Consume atomically reads and clears the actor's pending bind. Subsequent
// calls return ok=false until Begin is called again. No other actor's
// state is touched.
func (p *PendingBinds) Consume(actor ulid.ULID) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	name, ok := p.pending[actor]
	if ok {
		delete(p.pending, actor)
	}
	return name, ok
}

// Clear removes the actor's pending bind, used on session end or after a
// failed bind attempt.
func (p *PendingBinds) Clear(actor ulid.ULID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, actor)
}

// Len returns the number of actors with a pending bind.
func (p *PendingBinds) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pending)
}
