// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package world

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gachapoint/gachapoint/internal/gacha"
)

func TestMemory_SignLifecycle(t *testing.T) {
	m := NewMemory()
	pos := gacha.Coord{X: 10, Y: 64, Z: -5}
	lines := [4]string{"[Gacha] Lobby", "name: lobby", "Right click to draw!", "100 G"}

	m.PlaceSign("hub", pos, lines)

	material, ok := m.BlockMaterial("hub", pos)
	require.True(t, ok)
	assert.Equal(t, gacha.MaterialSign, material)

	got, ok := m.SignLines("hub", pos)
	require.True(t, ok)
	assert.Equal(t, lines, got)

	rewritten := [4]string{"a", "b", "c", "d"}
	m.SetSignLines("hub", pos, rewritten)
	got, ok = m.SignLines("hub", pos)
	require.True(t, ok)
	assert.Equal(t, rewritten, got)

	m.RemoveBlock("hub", pos)
	_, ok = m.BlockMaterial("hub", pos)
	assert.False(t, ok)
}

func TestMemory_SignQueriesIgnoreOtherMaterials(t *testing.T) {
	m := NewMemory()
	pos := gacha.Coord{X: 1, Y: 2, Z: 3}
	m.PlaceChest("hub", pos, 27)

	_, ok := m.SignLines("hub", pos)
	assert.False(t, ok)

	// SetSignLines on a chest is a no-op.
	m.SetSignLines("hub", pos, [4]string{"x"})
	material, ok := m.BlockMaterial("hub", pos)
	require.True(t, ok)
	assert.Equal(t, gacha.MaterialChest, material)
}

func TestMemory_ContainerAt(t *testing.T) {
	m := NewMemory()
	pos := gacha.Coord{X: 0, Y: 70, Z: 0}
	chest := m.PlaceChest("hub", pos, 27)
	chest.SetSlot(3, gacha.ItemStack{Item: "diamond", Count: 2})

	inv, ok := m.ContainerAt("hub", pos)
	require.True(t, ok)
	assert.Equal(t, 27, inv.Size())

	stack, ok := inv.Item(3)
	require.True(t, ok)
	assert.Equal(t, gacha.ItemStack{Item: "diamond", Count: 2}, stack)

	_, ok = inv.Item(4)
	assert.False(t, ok, "empty slot reads as absent")

	// Not a container.
	m.PlaceSign("hub", gacha.Coord{X: 1, Y: 70, Z: 0}, [4]string{})
	_, ok = m.ContainerAt("hub", gacha.Coord{X: 1, Y: 70, Z: 0})
	assert.False(t, ok)

	// No block at all.
	_, ok = m.ContainerAt("hub", gacha.Coord{X: 99, Y: 99, Z: 99})
	assert.False(t, ok)
}

func TestMemory_WorldsAreDistinct(t *testing.T) {
	m := NewMemory()
	pos := gacha.Coord{X: 5, Y: 5, Z: 5}
	m.PlaceSign("hub", pos, [4]string{"hub sign"})

	_, ok := m.BlockMaterial("nether", pos)
	assert.False(t, ok, "same coordinate in another world is a different block")
}

func TestChest_SlotBounds(t *testing.T) {
	c := NewChest(3)

	_, ok := c.Item(-1)
	assert.False(t, ok)
	_, ok = c.Item(3)
	assert.False(t, ok)

	// Out-of-range writes are dropped.
	c.SetSlot(-1, gacha.ItemStack{Item: "x", Count: 1})
	c.SetSlot(3, gacha.ItemStack{Item: "x", Count: 1})
	assert.Equal(t, 3, c.Size())
	for i := 0; i < 3; i++ {
		_, ok := c.Item(i)
		assert.False(t, ok)
	}
}

func TestChest_SetSlotReplaces(t *testing.T) {
	c := NewChest(1)
	c.SetSlot(0, gacha.ItemStack{Item: "iron", Count: 5})
	c.SetSlot(0, gacha.ItemStack{Item: "gold", Count: 1})

	stack, ok := c.Item(0)
	require.True(t, ok)
	assert.Equal(t, gacha.ItemStack{Item: "gold", Count: 1}, stack)
}

func TestActor_HandAndBag(t *testing.T) {
	a := NewActor(gacha.ItemStack{Item: "ticket", Count: 5})
	assert.Equal(t, 5, a.HandCount())

	a.SetHandCount(4)
	assert.Equal(t, 4, a.HandCount())

	a.Add(gacha.ItemStack{Item: "diamond", Count: 1})
	a.Add(gacha.ItemStack{Item: "emerald", Count: 3})
	assert.Equal(t, []gacha.ItemStack{
		{Item: "diamond", Count: 1},
		{Item: "emerald", Count: 3},
	}, a.Bag())
}

func TestMemory_SendToActors(t *testing.T) {
	m := NewMemory()
	id := ulid.Make()
	actor := NewActor(gacha.ItemStack{})
	m.Join(id, actor)

	m.Send(id, "hello")
	m.Send(ulid.Make(), "dropped")
	assert.Equal(t, []string{"hello"}, actor.Messages())

	m.Leave(id)
	m.Send(id, "after leave")
	assert.Equal(t, []string{"hello"}, actor.Messages(), "messages after leave are dropped")
}
