// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MarkerHeader is the first sign line that marks a registration attempt.
const MarkerHeader = "[gacha]"

// PermissionCreate gates marker registration.
const PermissionCreate = "gacha.create"

// AccessControl is the authorization collaborator. This mirrors
// internal/access.AccessControl to avoid coupling gacha to that package.
type AccessControl interface {
	Check(subject, permission string) bool
}

// SignFormat holds the configured marker line templates applied after a
// successful registration.
type SignFormat struct {
	Line1Prefix string
	Line2Prefix string
	Line3       string
}

// Messages holds the configurable actor-facing message templates.
type Messages struct {
	AlreadyRegistered string
	InsufficientFunds string
	NotFoundChest1    string
	NotFoundChest2    string
	NotFoundPick      string
	FoundPick         string
	BindPrompt        string
	BindUpdated       string
	Deleted           string
}

// CoordinatorConfig holds dependencies for a Coordinator. The economy
// provider is injected here once at startup rather than read from a
// process-wide global.
type CoordinatorConfig struct {
	Repo      Repository
	Cache     *SignCache
	Pending   *PendingBinds
	Economy   Economy
	World     WorldState
	Messenger Messenger
	Access    AccessControl
	Signs     SignFormat
	Messages  Messages

	// RandIntN picks a uniform integer in [0, n). Defaults to the
	// process-wide PRNG; tests inject a deterministic source.
	RandIntN func(n int) int
}

// Coordinator drives the draw-point state machine: marker registration,
// container binding, and the priced random draw. Transitions run to
// completion or failure on the host's dispatch context; the registry,
// cache, and pending-bind tracker each carry their own locking so the
// console can touch them from other goroutines.
//
// Known gap, preserved from the source behavior: a purchase debits funds
// before the container lookup and before the slot draw, and neither a
// missing container nor an empty-slot draw refunds the debit.
type Coordinator struct {
	repo      Repository
	cache     *SignCache
	pending   *PendingBinds
	economy   Economy
	world     WorldState
	messenger Messenger
	access    AccessControl
	signs     SignFormat
	messages  Messages
	randIntN  func(n int) int

	// enabled gates the world event handlers only. While false, sign
	// changes and interactions pass through untouched; console commands
	// keep working so an operator can re-enable.
	enabled atomic.Bool
}

// NewCoordinator creates a Coordinator from the given configuration.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	c := &Coordinator{
		repo:      cfg.Repo,
		cache:     cfg.Cache,
		pending:   cfg.Pending,
		economy:   cfg.Economy,
		world:     cfg.World,
		messenger: cfg.Messenger,
		access:    cfg.Access,
		signs:     cfg.Signs,
		messages:  cfg.Messages,
		randIntN:  cfg.RandIntN,
	}
	if c.randIntN == nil {
		c.randIntN = rand.IntN
	}
	c.enabled.Store(true)
	return c
}

// Enable re-arms the world event handlers. Reports whether the state
// changed.
func (c *Coordinator) Enable() bool {
	return c.enabled.CompareAndSwap(false, true)
}

// Disable stops the world event handlers without tearing anything down.
// Reports whether the state changed.
func (c *Coordinator) Disable() bool {
	return c.enabled.CompareAndSwap(true, false)
}

// Enabled reports whether world events are being handled.
func (c *Coordinator) Enabled() bool {
	return c.enabled.Load()
}

// HandleSignChange runs the registration transition. A sign whose first
// line is the marker header becomes a draw-point when the actor holds the
// creation permission and the name, price, and coordinates validate.
func (c *Coordinator) HandleSignChange(ctx context.Context, ev *SignChangeEvent) {
	if !c.enabled.Load() {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(ev.Lines[0]), MarkerHeader) {
		return
	}
	if !c.access.Check(subject(ev.Actor), PermissionCreate) {
		// Unauthorized attempts pass through as a plain sign.
		return
	}

	if err := c.register(ctx, ev); err != nil {
		ev.Cancelled = true
		c.report(ctx, ev.Actor, "sign_change", err)
		RecordRegistration(StatusError)
		return
	}
	RecordRegistration(StatusSuccess)
}

// register performs the fallible part of the registration transition.
func (c *Coordinator) register(ctx context.Context, ev *SignChangeEvent) error {
	// Force-refresh so a marker registered moments ago on another path is
	// rejected here rather than surfacing as a storage conflict.
	if c.cache.Query(ctx, ev.World, ev.Pos, true) {
		return ErrConflict(c.messages.AlreadyRegistered, nil)
	}

	name := ev.Lines[1]
	if err := ValidateName(name); err != nil {
		return err
	}
	displayName := ev.Lines[2]
	price, err := ParsePrice(ev.Lines[3])
	if err != nil {
		return err
	}

	dp, err := c.repo.Create(ctx, &DrawPoint{
		Name:        name,
		DisplayName: displayName,
		Price:       price,
		World:       ev.World,
		Marker:      ev.Pos,
	})
	if err != nil {
		return err
	}
	if dp.World != ev.World || dp.Marker != ev.Pos {
		// Get-or-create resolved to an existing draw-point anchored
		// elsewhere: same name, different marker.
		return ErrConflict(c.messages.AlreadyRegistered, nil)
	}

	ev.Lines[0] = c.signs.Line1Prefix + displayName
	ev.Lines[1] = c.signs.Line2Prefix + name
	ev.Lines[2] = c.signs.Line3
	ev.Lines[3] = c.economy.Format(price)

	// Mutations refresh immediately; the TTL window is only for reads.
	_ = c.cache.Refresh(ctx)
	return nil
}

// BeginBind runs the bind-intent transition: it records the actor's
// pending bind and prompts for the container interaction. Called from the
// modify command.
func (c *Coordinator) BeginBind(ctx context.Context, actor ulid.ULID, name string) error {
	dp, err := c.repo.Get(ctx, name)
	if err != nil {
		return err
	}
	if dp == nil {
		return ErrDrawPointNotFound(name)
	}
	c.pending.Begin(actor, name)
	c.messenger.Send(actor, c.messages.BindPrompt+" gacha_name="+name)
	return nil
}

// HandleInteract routes a world interaction to the purchase or
// bind-commit transition based on the clicked block's material.
func (c *Coordinator) HandleInteract(ctx context.Context, ev *InteractEvent) {
	if !c.enabled.Load() {
		return
	}
	if ev.Action != ActionRightClickBlock {
		return
	}
	switch ev.Material {
	case MaterialSign:
		c.purchase(ctx, ev)
	case MaterialChest:
		c.commitBind(ctx, ev)
	}
}

// purchase runs the priced random draw. The interaction is consumed
// unconditionally once the cache answers yes, even when a later step
// fails.
func (c *Coordinator) purchase(ctx context.Context, ev *InteractEvent) {
	if !c.cache.Query(ctx, ev.World, ev.Pos, false) {
		return
	}
	ev.Cancelled = true

	if err := c.draw(ctx, ev); err != nil {
		c.report(ctx, ev.Actor, "purchase", err)
		return
	}
	RecordDraw(StatusSuccess)
	c.messenger.Send(ev.Actor, c.messages.FoundPick)
}

// draw performs the purchase steps in pay-first order: price resolution,
// balance check, debit, container resolution, ticket consumption, uniform
// slot pick, clone delivery.
func (c *Coordinator) draw(ctx context.Context, ev *InteractEvent) error {
	dp, err := c.repo.GetByMarker(ctx, ev.World, ev.Pos)
	if err != nil {
		RecordDraw(StatusError)
		return err
	}
	if dp == nil {
		// Cache said yes but the registry disagrees: a stale entry or a
		// delete raced the interaction.
		RecordDraw(StatusError)
		return ErrStorage("resolve draw-point by marker",
			oops.With("world", ev.World).With("pos", ev.Pos.String()).Errorf("marker not in registry"))
	}

	price, ok, err := c.repo.GetPrice(ctx, dp.Name)
	if err != nil {
		RecordDraw(StatusError)
		return err
	}
	if !ok {
		RecordDraw(StatusError)
		return ErrStorage("resolve draw-point price",
			oops.With("gacha_name", dp.Name).Errorf("price not found"))
	}

	if !c.economy.Has(ev.Actor, price) {
		RecordDraw(StatusInsufficientFunds)
		return ErrEconomy(c.messages.InsufficientFunds, nil)
	}

	// Pay first. Everything after this point leaves the actor debited.
	if err := c.economy.Withdraw(ev.Actor, price); err != nil {
		RecordDraw(StatusError)
		return ErrEconomy(err.Error(), err)
	}

	inv, ok := c.containerInventory(dp)
	if !ok {
		RecordDraw(StatusNoContainer)
		c.messenger.Send(ev.Actor, c.messages.NotFoundChest1)
		return ErrInventory(c.messages.NotFoundChest2)
	}

	// One ticket per draw; an empty hand is a no-op floor, never an
	// underflow.
	if n := ev.Inventory.HandCount(); n > 0 {
		ev.Inventory.SetHandCount(n - 1)
	}

	// Uniform over the full capacity, empty slots included. Hitting an
	// empty slot is the miss-chance mechanic, not a bug.
	size := inv.Size()
	if size == 0 {
		RecordDraw(StatusEmptySlot)
		return ErrInventory(c.messages.NotFoundPick)
	}
	stack, ok := inv.Item(c.randIntN(size))
	if !ok {
		RecordDraw(StatusEmptySlot)
		return ErrInventory(c.messages.NotFoundPick)
	}

	// The container keeps its contents; the actor receives a clone.
	ev.Inventory.Add(stack)
	return nil
}

// containerInventory resolves a draw-point's bound container to a live
// inventory. Fails when the draw-point was never bound, the block is gone,
// or the block is no longer a container.
func (c *Coordinator) containerInventory(dp *DrawPoint) (ContainerInventory, bool) {
	if !dp.Bound() {
		return nil, false
	}
	material, ok := c.world.BlockMaterial(dp.World, *dp.Container)
	if !ok || material != MaterialChest {
		return nil, false
	}
	return c.world.ContainerAt(dp.World, *dp.Container)
}

// commitBind runs the bind-commit transition: a container click by an
// actor with a pending bind associates that container with the pending
// draw-point. Actors without a pending bind interact normally.
func (c *Coordinator) commitBind(ctx context.Context, ev *InteractEvent) {
	name, ok := c.pending.Consume(ev.Actor)
	if !ok {
		return
	}
	ev.Cancelled = true

	// No cache refresh here: bind does not change the marker-coordinate
	// cache keys.
	if err := c.repo.Bind(ctx, name, ev.Pos); err != nil {
		c.report(ctx, ev.Actor, "bind", err)
		return
	}
	c.messenger.Send(ev.Actor, c.messages.BindUpdated+" gacha_name="+name)
}

// Delete removes a draw-point and force-refreshes the cache so the marker
// stops answering as a draw-point immediately.
func (c *Coordinator) Delete(ctx context.Context, name string) error {
	if err := c.repo.Delete(ctx, name); err != nil {
		return err
	}
	_ = c.cache.Refresh(ctx)
	return nil
}

// List returns all draw-points, most recently created first.
func (c *Coordinator) List(ctx context.Context) ([]*DrawPoint, error) {
	return c.repo.List(ctx)
}

// HandleSessionEnd clears per-actor ephemeral state when the actor's
// session ends.
func (c *Coordinator) HandleSessionEnd(actor ulid.ULID) {
	c.pending.Clear(actor)
}

// report converts a transition failure into a terse actor message and a
// full log record. Nothing propagates far enough to take down the host.
func (c *Coordinator) report(ctx context.Context, actor ulid.ULID, transition string, err error) {
	c.messenger.Send(actor, PlayerMessage(err))
	slog.WarnContext(ctx, "transition failed",
		"transition", transition,
		"actor", actor.String(),
		"code", ErrorCode(err),
		"error", err,
	)
}

func subject(actor ulid.ULID) string {
	return "actor:" + actor.String()
}
