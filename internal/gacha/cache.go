// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SignCache answers "is this coordinate a draw-point marker?" without a
// storage round trip. It holds the full set of marker cache keys plus a
// single expiry for the whole set; Refresh replaces the set wholesale.
//
// The cache is a derived view and never the source of truth. Staleness is
// bounded by the configured TTL: a deletion may keep answering yes and a
// creation may answer no until the next refresh, so mutating callers force
// a refresh immediately instead of waiting for expiry.
//
// Thread-safety: concurrent reads, exclusive writes during Refresh. The
// membership check itself never blocks on storage.
type SignCache struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	keys      map[string]struct{}
	expiresAt time.Time
}

// SignCacheOption configures a SignCache during construction.
type SignCacheOption func(*SignCache)

// WithClock overrides the cache's time source. Used by tests to drive
// expiry deterministically.
func WithClock(now func() time.Time) SignCacheOption {
	return func(c *SignCache) {
		c.now = now
	}
}

// NewSignCache creates an empty, already-expired cache. The first Query
// populates it.
func NewSignCache(repo Repository, ttl time.Duration, opts ...SignCacheOption) *SignCache {
	c := &SignCache{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
		keys: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh replaces the cached coordinate set by re-querying the registry
// and resets the expiry to now + TTL. On failure the previous contents and
// expiry are left untouched; Contains keeps serving the stale set rather
// than failing the caller.
func (c *SignCache) Refresh(ctx context.Context) error {
	keys, err := c.repo.MarkerKeys(ctx)
	if err != nil {
		RecordCacheRefresh(StatusError)
		slog.WarnContext(ctx, "sign cache refresh failed, serving stale set",
			"error", err,
		)
		return ErrStorage("refresh sign cache", err)
	}

	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}

	c.mu.Lock()
	c.keys = set
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()

	RecordCacheRefresh(StatusSuccess)
	return nil
}

// Contains is a pure membership check against the current cached set.
// It never touches durable storage.
func (c *SignCache) Contains(world string, pos Coord) bool {
	key := CacheKey(world, pos)
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.keys[key]
	return ok
}

// IsExpired reports whether the snapshot has passed its expiry.
func (c *SignCache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.now().Before(c.expiresAt)
}

// Query refreshes first when forced or expired, then answers membership.
// This is the hot path: it fires on every world interaction, and only the
// expiry boundary or an explicit force reaches storage.
func (c *SignCache) Query(ctx context.Context, world string, pos Coord, forceRefresh bool) bool {
	if forceRefresh || c.IsExpired() {
		// A failed refresh already logged; fall through to the stale set.
		_ = c.Refresh(ctx)
	}
	return c.Contains(world, pos)
}

// Len returns the number of cached marker coordinates.
func (c *SignCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}
