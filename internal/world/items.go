package world

import (
	"time"

	"github.com/gelopine/realm/internal/core/ecs"
)

// Item is a collectible lying in the world. The set of implementations is
// closed: *XPOrb and *MemoryItem.
type Item interface {
	EntityID() ecs.EntityID
	Bounds() Rect
	isItem()
}

// XPOrb is a fungible orb granting XPPerOrb on pickup.
type XPOrb struct {
	ID   ecs.EntityID
	X, Y float64
}

func (o *XPOrb) EntityID() ecs.EntityID { return o.ID }
func (o *XPOrb) Bounds() Rect           { return Rect{X: o.X, Y: o.Y, W: OrbSize, H: OrbSize} }
func (*XPOrb) isItem()                  {}

// MemoryItem is the on-screen instance of a memory. At most one exists per
// memory id.
type MemoryItem struct {
	ID       ecs.EntityID
	MemoryID string
	X, Y     float64
	Size     float64
}

func (m *MemoryItem) EntityID() ecs.EntityID { return m.ID }
func (m *MemoryItem) Bounds() Rect           { return Rect{X: m.X, Y: m.Y, W: m.Size, H: m.Size} }
func (*MemoryItem) isItem()                  {}

// Memory is a narrative catalog entry. Found only goes false→true, except on
// New-Game+.
type Memory struct {
	ID        string
	Narrative string
	Size      float64
	Found     bool
}

// Tree is a harvestable. Depleted trees count down Respawn and come back at
// full health.
type Tree struct {
	ID      ecs.EntityID
	X, Y    float64
	Health  int
	Respawn time.Duration
}

func (t *Tree) Bounds() Rect   { return Rect{X: t.X, Y: t.Y, W: TreeSize, H: TreeSize} }
func (t *Tree) Depleted() bool { return t.Health <= 0 }
