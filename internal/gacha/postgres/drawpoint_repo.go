// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package postgres implements gacha.Repository using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/gachapoint/gachapoint/internal/gacha"
	"github.com/gachapoint/gachapoint/internal/store"
)

// Unique index names, matched against constraint violations to classify
// conflicts. The indexes are the authoritative backstop for uniqueness:
// two racing creates both pass the pre-check and one loses here.
const (
	nameIndex  = "gacha_name_uindex"
	signIndex  = "gacha_world_sign_uindex"
	chestIndex = "gacha_world_chest_uindex"
)

const selectColumns = `id, gacha_name, gacha_display_name, gacha_price,
	       world_name, sign_x, sign_y, sign_z, chest_x, chest_y, chest_z,
	       created_at, updated_at`

// poolIface abstracts the pgx pool so tests can substitute pgxmock.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DrawPointRepository implements gacha.Repository using PostgreSQL.
// Every operation is a single-statement transaction bounded by the
// configured query timeout.
type DrawPointRepository struct {
	pool    poolIface
	timeout time.Duration
}

// NewDrawPointRepository creates a repository over the given pool.
// queryTimeout bounds each statement; zero disables the client-side bound.
func NewDrawPointRepository(pool poolIface, queryTimeout time.Duration) *DrawPointRepository {
	return &DrawPointRepository{pool: pool, timeout: queryTimeout}
}

// opCtx derives a per-statement context so storage calls fail fast rather
// than hang the dispatch context.
func (r *DrawPointRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Initialize idempotently ensures the gacha schema and its unique indexes.
func (r *DrawPointRepository) Initialize(ctx context.Context) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()
	if err := store.EnsureSchema(ctx, r.pool); err != nil {
		return gacha.ErrStorage("initialize registry", err)
	}
	return nil
}

// Create inserts a draw-point, or returns the existing row when the name
// is already taken (get-or-create by name). The pre-check is advisory
// only; a unique violation on the name index from a racing insert is
// treated as the authoritative already-exists signal.
func (r *DrawPointRepository) Create(ctx context.Context, dp *gacha.DrawPoint) (*gacha.DrawPoint, error) {
	existing, err := r.Get(ctx, dp.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	created := *dp
	err = r.pool.QueryRow(ctx, `
		INSERT INTO gacha (gacha_name, gacha_display_name, gacha_price,
		                   world_name, sign_x, sign_y, sign_z)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, dp.Name, dp.DisplayName, dp.Price, dp.World,
		dp.Marker.X, dp.Marker.Y, dp.Marker.Z,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			if pgErr.ConstraintName == nameIndex {
				// Lost the race on the name: the winner's row is the result.
				winner, getErr := r.Get(ctx, dp.Name)
				if getErr != nil {
					return nil, getErr
				}
				if winner != nil {
					return winner, nil
				}
			}
			return nil, gacha.ErrConflict(
				"A draw-point is already registered at that coordinate.", err)
		}
		return nil, gacha.ErrStorage("create draw-point", oops.With("gacha_name", dp.Name).Wrap(err))
	}
	return &created, nil
}

// Bind sets the container coordinate of the named draw-point.
func (r *DrawPointRepository) Bind(ctx context.Context, name string, container gacha.Coord) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE gacha
		SET chest_x = $2, chest_y = $3, chest_z = $4,
		    updated_at = LOCALTIMESTAMP(0)
		WHERE gacha_name = $1
	`, name, container.X, container.Y, container.Z)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return gacha.ErrConflict(
				"That container is already bound to another draw-point.", err)
		}
		return gacha.ErrStorage("bind container", oops.With("gacha_name", name).Wrap(err))
	}
	if tag.RowsAffected() == 0 {
		return gacha.ErrDrawPointNotFound(name)
	}
	return nil
}

// Delete removes the named draw-point.
func (r *DrawPointRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM gacha WHERE gacha_name = $1`, name)
	if err != nil {
		return gacha.ErrStorage("delete draw-point", oops.With("gacha_name", name).Wrap(err))
	}
	if tag.RowsAffected() == 0 {
		return gacha.ErrDrawPointNotFound(name)
	}
	return nil
}

// Get returns the named draw-point, or nil when absent.
func (r *DrawPointRepository) Get(ctx context.Context, name string) (*gacha.DrawPoint, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM gacha WHERE gacha_name = $1
	`, name)
	dp, err := scanDrawPoint(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, gacha.ErrStorage("get draw-point", oops.With("gacha_name", name).Wrap(err))
	}
	return dp, nil
}

// GetPrice returns the price of the named draw-point.
func (r *DrawPointRepository) GetPrice(ctx context.Context, name string) (int64, bool, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var price int64
	err := r.pool.QueryRow(ctx,
		`SELECT gacha_price FROM gacha WHERE gacha_name = $1`, name,
	).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, gacha.ErrStorage("get draw-point price", oops.With("gacha_name", name).Wrap(err))
	}
	return price, true, nil
}

// GetByMarker resolves a draw-point by its marker placement.
func (r *DrawPointRepository) GetByMarker(ctx context.Context, world string, marker gacha.Coord) (*gacha.DrawPoint, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM gacha
		WHERE world_name = $1 AND sign_x = $2 AND sign_y = $3 AND sign_z = $4
	`, world, marker.X, marker.Y, marker.Z)
	dp, err := scanDrawPoint(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, gacha.ErrStorage("get draw-point by marker",
			oops.With("world", world).With("marker", marker.String()).Wrap(err))
	}
	return dp, nil
}

// List returns all draw-points, most recently created first.
func (r *DrawPointRepository) List(ctx context.Context) ([]*gacha.DrawPoint, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM gacha ORDER BY id DESC
	`)
	if err != nil {
		return nil, gacha.ErrStorage("list draw-points", err)
	}
	defer rows.Close()

	points := make([]*gacha.DrawPoint, 0)
	for rows.Next() {
		dp, err := scanDrawPoint(rows)
		if err != nil {
			return nil, gacha.ErrStorage("scan draw-point row", err)
		}
		points = append(points, dp)
	}
	if err := rows.Err(); err != nil {
		return nil, gacha.ErrStorage("iterate draw-points", err)
	}
	return points, nil
}

// MarkerKeys returns the cache keys of every marker coordinate.
func (r *DrawPointRepository) MarkerKeys(ctx context.Context) ([]string, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT world_name, sign_x, sign_y, sign_z FROM gacha`)
	if err != nil {
		return nil, gacha.ErrStorage("query marker coordinates", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var world string
		var pos gacha.Coord
		if err := rows.Scan(&world, &pos.X, &pos.Y, &pos.Z); err != nil {
			return nil, gacha.ErrStorage("scan marker coordinate", err)
		}
		keys = append(keys, gacha.CacheKey(world, pos))
	}
	if err := rows.Err(); err != nil {
		return nil, gacha.ErrStorage("iterate marker coordinates", err)
	}
	return keys, nil
}

// scanDrawPoint reads one row in selectColumns order.
func scanDrawPoint(row pgx.Row) (*gacha.DrawPoint, error) {
	var dp gacha.DrawPoint
	var chestX, chestY, chestZ *int
	if err := row.Scan(
		&dp.ID, &dp.Name, &dp.DisplayName, &dp.Price,
		&dp.World, &dp.Marker.X, &dp.Marker.Y, &dp.Marker.Z,
		&chestX, &chestY, &chestZ,
		&dp.CreatedAt, &dp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if chestX != nil && chestY != nil && chestZ != nil {
		dp.Container = &gacha.Coord{X: *chestX, Y: *chestY, Z: *chestZ}
	}
	return &dp, nil
}

// Compile-time interface check.
var _ gacha.Repository = (*DrawPointRepository)(nil)
