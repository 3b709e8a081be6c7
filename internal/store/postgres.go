// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package store provides database connectivity and schema management for
// the draw-point registry.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

//go:embed migrations/000001_create_gacha.up.sql
var schemaSQL string

// connectAttempts bounds the startup ping retry.
const connectAttempts = 5

// Connect opens a pgx connection pool and verifies connectivity with a
// bounded exponential backoff. The statement timeout is applied server-side
// so storage calls fail fast instead of hanging the dispatch context.
func Connect(ctx context.Context, dsn string, statementTimeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, oops.With("operation", "parse database url").Wrap(err)
	}
	cfg.ConnConfig.RuntimeParams["statement_timeout"] =
		fmt.Sprintf("%d", statementTimeout.Milliseconds())

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.With("operation", "create connection pool").Wrap(err)
	}

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.With("operation", "ping database").Wrap(err)
	}

	return pool, nil
}

// Execer abstracts statement execution so EnsureSchema works with both
// *pgxpool.Pool and mocked pools in tests.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema idempotently creates the gacha table and its unique
// indexes. Safe to run on every process start; managed deployments use the
// migrate subcommand instead, which applies the same embedded SQL.
func EnsureSchema(ctx context.Context, pool Execer) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return oops.Code("SCHEMA_ENSURE_FAILED").With("operation", "ensure gacha schema").Wrap(err)
	}
	return nil
}
