// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package world provides an in-memory world-simulation collaborator for
// the demo server and tests. A production deployment bridges the host
// runtime's block and inventory state instead.
package world

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

// Chest is a fixed-capacity reward container.
type Chest struct {
	mu    sync.RWMutex
	slots []*gacha.ItemStack
}

// NewChest creates a chest with the given slot capacity.
func NewChest(capacity int) *Chest {
	return &Chest{slots: make([]*gacha.ItemStack, capacity)}
}

// Size returns the slot capacity, occupied or not.
func (c *Chest) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.slots)
}

// Item returns the stack in a slot, ok=false when the slot is empty or
// out of range.
func (c *Chest) Item(slot int) (gacha.ItemStack, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if slot < 0 || slot >= len(c.slots) || c.slots[slot] == nil {
		return gacha.ItemStack{}, false
	}
	return *c.slots[slot], true
}

// SetSlot places a stack in a slot, replacing its contents.
func (c *Chest) SetSlot(slot int, stack gacha.ItemStack) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if slot < 0 || slot >= len(c.slots) {
		return
	}
	c.slots[slot] = &stack
}

// Actor is a connected player: a held ticket stack, a bag, and a message
// log.
type Actor struct {
	mu       sync.Mutex
	hand     gacha.ItemStack
	bag      []gacha.ItemStack
	messages []string
}

// NewActor creates an actor holding the given ticket stack.
func NewActor(hand gacha.ItemStack) *Actor {
	return &Actor{hand: hand}
}

// HandCount returns the quantity of the held item.
func (a *Actor) HandCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hand.Count
}

// SetHandCount overwrites the held quantity.
func (a *Actor) SetHandCount(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hand.Count = n
}

// Add delivers a stack to the actor's bag.
func (a *Actor) Add(stack gacha.ItemStack) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bag = append(a.bag, stack)
}

// Bag returns a copy of the actor's delivered items.
func (a *Actor) Bag() []gacha.ItemStack {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]gacha.ItemStack, len(a.bag))
	copy(out, a.bag)
	return out
}

// Messages returns a copy of the messages sent to the actor.
func (a *Actor) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.messages))
	copy(out, a.messages)
	return out
}

func (a *Actor) deliverMessage(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, msg)
}

// block is one placed block: material plus sign text or chest contents
// depending on material.
type block struct {
	material string
	lines    [4]string
	chest    *Chest
}

// Memory is an in-memory world state implementing gacha.WorldState and
// gacha.Messenger. Blocks are keyed by world plus coordinate.
type Memory struct {
	mu     sync.RWMutex
	blocks map[string]*block
	actors map[ulid.ULID]*Actor
}

// NewMemory creates an empty world.
func NewMemory() *Memory {
	return &Memory{
		blocks: make(map[string]*block),
		actors: make(map[ulid.ULID]*Actor),
	}
}

// Join registers an actor with the world.
func (m *Memory) Join(id ulid.ULID, actor *Actor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actors[id] = actor
}

// Leave removes an actor from the world.
func (m *Memory) Leave(id ulid.ULID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.actors, id)
}

// PlaceSign places a sign block with the given text.
func (m *Memory) PlaceSign(world string, pos gacha.Coord, lines [4]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[gacha.CacheKey(world, pos)] = &block{material: gacha.MaterialSign, lines: lines}
}

// PlaceChest places a chest block and returns its inventory.
func (m *Memory) PlaceChest(world string, pos gacha.Coord, capacity int) *Chest {
	chest := NewChest(capacity)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocks[gacha.CacheKey(world, pos)] = &block{material: gacha.MaterialChest, chest: chest}
	return chest
}

// RemoveBlock deletes the block at a coordinate.
func (m *Memory) RemoveBlock(world string, pos gacha.Coord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocks, gacha.CacheKey(world, pos))
}

// BlockMaterial returns the material at a coordinate.
func (m *Memory) BlockMaterial(world string, pos gacha.Coord) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[gacha.CacheKey(world, pos)]
	if !ok {
		return "", false
	}
	return b.material, true
}

// SetSignLines rewrites the text of a sign block. Used by the dispatch
// loop to apply the coordinator's sign rewrite after registration.
func (m *Memory) SetSignLines(world string, pos gacha.Coord, lines [4]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blocks[gacha.CacheKey(world, pos)]
	if !ok || b.material != gacha.MaterialSign {
		return
	}
	b.lines = lines
}

// SignLines returns the text of a sign block.
func (m *Memory) SignLines(world string, pos gacha.Coord) ([4]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[gacha.CacheKey(world, pos)]
	if !ok || b.material != gacha.MaterialSign {
		return [4]string{}, false
	}
	return b.lines, true
}

// ContainerAt returns the inventory of the chest block at a coordinate.
func (m *Memory) ContainerAt(world string, pos gacha.Coord) (gacha.ContainerInventory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[gacha.CacheKey(world, pos)]
	if !ok || b.material != gacha.MaterialChest || b.chest == nil {
		return nil, false
	}
	return b.chest, true
}

// Send delivers a message to an actor. Messages to unknown actors are
// dropped.
func (m *Memory) Send(actor ulid.ULID, message string) {
	m.mu.RLock()
	a, ok := m.actors[actor]
	m.mu.RUnlock()
	if !ok {
		return
	}
	a.deliverMessage(message)
}

// Compile-time interface checks.
var (
	_ gacha.WorldState         = (*Memory)(nil)
	_ gacha.Messenger          = (*Memory)(nil)
	_ gacha.ContainerInventory = (*Chest)(nil)
	_ gacha.ActorInventory     = (*Actor)(nil)
)
