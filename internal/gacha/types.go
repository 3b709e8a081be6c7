// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package gacha implements the draw-point registry core: the persistent
// registry contract, the sign-location cache, the pending-bind tracker,
// and the interaction coordinator that ties them to the world runtime
// and the economy provider.
package gacha

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Coord is an integer block coordinate inside a world.
type Coord struct {
	X int
	Y int
	Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// CacheKey returns the composite membership key for a world coordinate.
// The format matches the persisted registry's cache view: world_x_y_z.
func CacheKey(world string, c Coord) string {
	return fmt.Sprintf("%s_%d_%d_%d", world, c.X, c.Y, c.Z)
}

// DrawPoint is a named, priced, coordinate-anchored dispenser entry.
// The name is immutable after creation; there is no rename operation.
type DrawPoint struct {
	ID          int64
	Name        string
	DisplayName string
	Price       int64
	World       string
	Marker      Coord
	Container   *Coord // nil until bound
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Bound reports whether the draw-point has a container to dispense from.
// An unbound draw-point must fail purchase closed.
func (dp *DrawPoint) Bound() bool {
	return dp.Container != nil
}

// Repository is the durable draw-point registry.
//
// All mutating operations are single-statement transactions; callers must
// not assume atomicity across a Get followed by a Create or Bind. The
// storage layer's unique indexes are the authoritative backstop for the
// name, marker, and container uniqueness invariants.
type Repository interface {
	// Initialize idempotently ensures the schema and its unique indexes
	// exist. Safe to call on every process start.
	Initialize(ctx context.Context) error

	// Create inserts a new draw-point, or returns the existing one when a
	// draw-point with the same name already exists (get-or-create by name).
	// A marker-coordinate collision with a different name surfaces as a
	// conflict error.
	Create(ctx context.Context, dp *DrawPoint) (*DrawPoint, error)

	// Bind sets the container coordinate of the named draw-point. The
	// container lives in the draw-point's own world. Returns a not-found
	// error if no such draw-point exists.
	Bind(ctx context.Context, name string, container Coord) error

	// Delete removes the named draw-point. Returns ErrNotFound when absent.
	Delete(ctx context.Context, name string) error

	// Get returns the named draw-point, or nil without error when absent.
	Get(ctx context.Context, name string) (*DrawPoint, error)

	// GetPrice returns the price of the named draw-point, or ok=false when
	// absent.
	GetPrice(ctx context.Context, name string) (price int64, ok bool, err error)

	// GetByMarker resolves a draw-point by its marker placement, or nil
	// without error when the coordinate is not a marker.
	GetByMarker(ctx context.Context, world string, marker Coord) (*DrawPoint, error)

	// List returns all draw-points, most recently created first.
	List(ctx context.Context) ([]*DrawPoint, error)

	// MarkerKeys returns the cache keys of every marker coordinate,
	// used by the sign cache to rebuild its membership set.
	MarkerKeys(ctx context.Context) ([]string, error)
}

// Economy is the player-economy collaborator. The process-wide provider is
// injected into the coordinator at startup rather than read from ambient
// global state.
type Economy interface {
	// Has reports whether the actor's balance covers amount.
	Has(actor ulid.ULID, amount int64) bool
	// Withdraw debits amount from the actor. A failed debit returns an
	// error whose message is shown to the actor verbatim.
	Withdraw(actor ulid.ULID, amount int64) error
	// Format renders an amount as a display string.
	Format(amount int64) string
}

// ItemStack is one slot's worth of items.
type ItemStack struct {
	Item  string
	Count int
}

// ContainerInventory is a read view of a reward container's slots.
type ContainerInventory interface {
	// Size returns the container's slot capacity, occupied or not.
	Size() int
	// Item returns the stack in the given slot, ok=false when empty.
	Item(slot int) (ItemStack, bool)
}

// ActorInventory is the purchasing actor's inventory surface: the held
// ticket item and delivery of the drawn reward.
type ActorInventory interface {
	// HandCount returns the quantity of the item in the actor's hand.
	HandCount() int
	// SetHandCount overwrites the held quantity.
	SetHandCount(n int)
	// Add delivers a stack to the actor's inventory.
	Add(stack ItemStack)
}

// WorldState is the world-simulation collaborator: block lookups and
// container inventory access.
type WorldState interface {
	// BlockMaterial returns the material at a coordinate, ok=false when
	// the block does not exist.
	BlockMaterial(world string, pos Coord) (material string, ok bool)
	// ContainerAt returns the inventory of the container block at pos,
	// ok=false when the block is missing or not a container.
	ContainerAt(world string, pos Coord) (ContainerInventory, bool)
}

// Messenger delivers terse user-visible messages to actors. Full error
// detail goes to the log, not to the actor.
type Messenger interface {
	Send(actor ulid.ULID, message string)
}

// Materials the coordinator distinguishes. The host runtime reports the
// clicked block's material on each interaction event.
const (
	MaterialSign  = "sign"
	MaterialChest = "chest"
)
