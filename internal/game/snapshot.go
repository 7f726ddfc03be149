package game

import (
	"fmt"

	"github.com/gelopine/realm/internal/core/ecs"
	"github.com/gelopine/realm/internal/handler"
	"github.com/gelopine/realm/internal/world"
)

// Snapshot is a read-only copy of everything a renderer draws.
type Snapshot struct {
	World      string
	Background []string
	Accent     string

	PlayerName    string
	Player        world.Rect
	Blinking      bool
	Level         int
	XP            int
	XPToNextLevel int
	Speed         float64
	BaseLevel     int
	Base          world.Rect

	Orbs     []ItemView
	Memories []ItemView
	Trees    []TreeView

	GuildName   string
	GuildLevel  int
	GuildXP     int
	GuildNextXP int
	Members     []string

	Alignment          string
	AlignmentRemaining int

	OverlayAlpha float64
	OverlayText  string

	Narrative   string
	GuildNotice string
	Notices     []string

	Inventory     []string // nil unless the inventory overlay is open
	TeleportMenu  []handler.MenuOption
	CommandLine   string
	CommandActive bool

	CraftQueue []string
}

// ItemView and TreeView carry the entity id so a renderer can key sprites
// across frames.
type ItemView struct {
	ID     ecs.EntityID
	Bounds world.Rect
}

type TreeView struct {
	ID       ecs.EntityID
	Bounds   world.Rect
	Health   int
	Depleted bool
}

// Snapshot copies the current state for drawing.
func (g *Game) Snapshot() Snapshot {
	s := g.State
	p := s.Player
	snap := Snapshot{
		World:         g.WorldName(),
		PlayerName:    p.Name,
		Player:        p.Bounds(),
		Blinking:      p.Blinking,
		Level:         p.Level,
		XP:            p.XP,
		XPToNextLevel: p.XPToNextLevel,
		Speed:         p.EffectiveSpeed(),
		BaseLevel:     p.BaseLevel,
		Base:          s.Base,
		GuildName:     p.Guild.Name,
		GuildLevel:    p.Guild.Level,
		GuildXP:       p.Guild.XP,
		GuildNextXP:   p.Guild.XPToNextLevel,
		Members:       append([]string(nil), p.Guild.Members...),
		Narrative:     s.Narrative.Text,
		GuildNotice:   s.GuildNotice.Text,
		Notices:       g.Notices(),
		CommandLine:   s.UI.CommandBuffer,
		CommandActive: s.UI.CommandMode,
	}
	if w := g.tables.Worlds.Get(s.CurrentWorld); w != nil {
		snap.Background = append([]string(nil), w.Background[:]...)
		snap.Accent = w.Accent
	}
	snap.OverlayAlpha, snap.OverlayText = s.Transition.Overlay()

	for _, it := range s.Items {
		v := ItemView{ID: it.EntityID(), Bounds: it.Bounds()}
		switch it.(type) {
		case *world.XPOrb:
			snap.Orbs = append(snap.Orbs, v)
		case *world.MemoryItem:
			snap.Memories = append(snap.Memories, v)
		}
	}
	for _, t := range s.Trees {
		snap.Trees = append(snap.Trees, TreeView{ID: t.ID, Bounds: t.Bounds(), Health: t.Health, Depleted: t.Depleted()})
	}

	if a := s.Alignment.Active; a != nil {
		snap.Alignment = a.Name
		snap.AlignmentRemaining = s.Alignment.RemainingSeconds()
	}
	if s.UI.ShowInventory {
		snap.Inventory = p.Inventory.DisplayLines()
	}
	if s.UI.ShowTeleport {
		snap.TeleportMenu = handler.MenuOptions(s, g.tables.Worlds)
	}
	for _, job := range s.CraftQueue {
		snap.CraftQueue = append(snap.CraftQueue, fmt.Sprintf("%s (%.1fs)", job.Recipe, job.Remaining.Seconds()))
	}
	return snap
}

// Status is a one-line summary for console output.
func (g *Game) Status() string {
	p := g.State.Player
	line := fmt.Sprintf("%s | %s | Lv %d (%d/%d XP) | Guild Lv %d | Base Lv %d | Memories %d/%d",
		p.Name, g.WorldName(), p.Level, p.XP, p.XPToNextLevel, p.Guild.Level, p.BaseLevel,
		len(p.MemoriesFound), len(g.State.Memories))
	if a := g.State.Alignment.Active; a != nil {
		line += fmt.Sprintf(" | %s %ds", a.Name, g.State.Alignment.RemainingSeconds())
	}
	return line
}
