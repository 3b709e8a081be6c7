// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package gacha

import (
	"github.com/oklog/ulid/v2"
)

// Interaction actions delivered by the host runtime.
const (
	ActionRightClickBlock = "right_click_block"
	ActionLeftClickBlock  = "left_click_block"
)

// SignChangeEvent is delivered when an actor submits text for a marker
// sign. The coordinator may rewrite Lines (the host applies the rewritten
// text to the world) and may set Cancelled to suppress the placement.
type SignChangeEvent struct {
	Actor     ulid.ULID
	World     string
	Pos       Coord
	Lines     [4]string
	Cancelled bool
}

// InteractEvent is delivered for every block interaction in the world.
// Material is the clicked block's material as reported by the host.
// Setting Cancelled suppresses the interaction's default world effect.
type InteractEvent struct {
	Actor     ulid.ULID
	World     string
	Pos       Coord
	Action    string
	Material  string
	Inventory ActorInventory
	Cancelled bool
}
