package world

import (
	"fmt"
	"math"
	"time"

	"github.com/gelopine/realm/internal/core/ecs"
	"github.com/gelopine/realm/internal/data"
)

// CraftJob is one entry of the crafting queue. Materials were already paid
// when it was queued.
type CraftJob struct {
	Recipe    string
	Remaining time.Duration
	Yields    []data.ItemAmount
}

// AlignmentState tracks the active cosmic alignment, if any.
type AlignmentState struct {
	Active     *data.AlignmentInfo
	Elapsed    time.Duration // time the active alignment has been running
	SinceCheck time.Duration // time since the last periodic roll
}

// SpawnRate is the orb cap multiplier of the active alignment.
func (a *AlignmentState) SpawnRate() float64 {
	if a.Active == nil {
		return 1
	}
	return a.Active.SpawnRateMultiplier
}

// SpeedMultiplier is the movement multiplier of the active alignment.
func (a *AlignmentState) SpeedMultiplier() float64 {
	if a.Active == nil {
		return 1
	}
	return a.Active.SpeedMultiplier
}

// RemainingSeconds rounds the time left up to whole seconds, as displayed.
func (a *AlignmentState) RemainingSeconds() int {
	if a.Active == nil {
		return 0
	}
	return int(math.Ceil((a.Active.Duration - a.Elapsed).Seconds()))
}

// Message is a transient on-screen text with its display timer.
type Message struct {
	Text    string
	Elapsed time.Duration
}

func (m *Message) Show(text string) {
	m.Text = text
	m.Elapsed = 0
}

// Advance runs the display timer and clears the text once shown for d.
func (m *Message) Advance(dt, d time.Duration) {
	if m.Text == "" {
		return
	}
	m.Elapsed += dt
	if m.Elapsed >= d {
		m.Text = ""
		m.Elapsed = 0
	}
}

// UI holds overlay and command line state driven by the input layer.
type UI struct {
	ShowInventory bool
	ShowTeleport  bool
	CommandMode   bool
	CommandBuffer string
}

// Paused reports whether an overlay or the command line halts movement.
func (u *UI) Paused() bool { return u.ShowInventory || u.ShowTeleport || u.CommandMode }

// Intents is the set of held movement directions.
type Intents struct {
	Up, Down, Left, Right bool
}

// State is the single game aggregate. Every system reads and mutates it
// through its own operations; nothing else holds game state.
type State struct {
	Width, Height float64

	Player       *Player
	CurrentWorld int

	Items    []Item
	Memories []*Memory
	Trees    []*Tree

	Transition Transition
	Alignment  AlignmentState
	CraftQueue []*CraftJob
	Cooldowns  map[string]time.Duration
	Base       Rect

	Narrative   Message
	GuildNotice Message

	UI      UI
	Intents Intents

	Entities *ecs.EntityPool

	startingInventory []string
	memoryCatalog     []*data.MemoryInfo
}

// NewState builds a fresh game for the named player in a w×h viewport.
func NewState(tables *data.Tables, name string, w, h float64) *State {
	s := &State{
		Width:             w,
		Height:            h,
		Entities:          ecs.NewEntityPool(),
		startingInventory: tables.Resources.StartingInventory(),
		memoryCatalog:     tables.Memories.All(),
	}
	s.Player = &Player{Name: name}
	s.Reset()
	s.CenterPlayer()
	return s
}

// Reset returns all progression, economy and world state to its initial
// values. The player's name and the viewport survive. Legacy is cleared; the
// caller reapplies one if needed.
func (s *State) Reset() {
	name := s.Player.Name
	*s.Player = Player{
		Name:          name,
		X:             s.Player.X,
		Y:             s.Player.Y,
		Speed:         BaseSpeed,
		SpeedBoost:    1,
		XPToNextLevel: StartXPThreshold,
		Inventory:     NewInventory(s.startingInventory...),
		Guild: Guild{
			Name:          fmt.Sprintf("%s's Guild", name),
			XPToNextLevel: StartGuildXPToLvl,
		},
	}

	s.Memories = s.Memories[:0]
	for _, m := range s.memoryCatalog {
		s.Memories = append(s.Memories, &Memory{ID: m.ID, Narrative: m.Narrative, Size: m.Size})
	}

	s.ClearItems()
	s.ClearTrees()
	s.CurrentWorld = 0
	s.Transition = Transition{}
	s.Alignment = AlignmentState{}
	s.CraftQueue = nil
	s.Cooldowns = make(map[string]time.Duration)
	s.Narrative = Message{}
	s.GuildNotice = Message{}
	s.UI = UI{}
	s.Intents = Intents{}
	s.PlaceBase(BaseStartSize)
}

// Memory returns the catalog entry for id, or nil.
func (s *State) Memory(id string) *Memory {
	for _, m := range s.Memories {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AllMemoriesFound reports whether every catalog memory has been found.
func (s *State) AllMemoriesFound() bool {
	for _, m := range s.Memories {
		if !m.Found {
			return false
		}
	}
	return true
}

// AddItem registers a new collectible, assigning its entity ID.
func (s *State) AddItem(it Item) {
	switch v := it.(type) {
	case *XPOrb:
		v.ID = s.Entities.Create()
	case *MemoryItem:
		v.ID = s.Entities.Create()
	}
	s.Items = append(s.Items, it)
}

// RemoveItemAt drops the item at index i, keeping the order of the rest.
func (s *State) RemoveItemAt(i int) {
	s.Entities.Destroy(s.Items[i].EntityID())
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
}

func (s *State) ClearItems() {
	for _, it := range s.Items {
		s.Entities.Destroy(it.EntityID())
	}
	s.Items = nil
}

// OrbCount and MemoryItemCount count live collectibles by variant.
func (s *State) OrbCount() int {
	n := 0
	for _, it := range s.Items {
		if _, ok := it.(*XPOrb); ok {
			n++
		}
	}
	return n
}

func (s *State) MemoryItemCount() int {
	n := 0
	for _, it := range s.Items {
		if _, ok := it.(*MemoryItem); ok {
			n++
		}
	}
	return n
}

// ItemIndex returns the index of the live item with entity id, or -1 when
// the id is stale or unknown.
func (s *State) ItemIndex(id ecs.EntityID) int {
	if !s.Entities.Alive(id) {
		return -1
	}
	for i, it := range s.Items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

// MemoryItemIndex returns the index of the world item for memory id, or -1.
func (s *State) MemoryItemIndex(id string) int {
	for i, it := range s.Items {
		if m, ok := it.(*MemoryItem); ok && m.MemoryID == id {
			return i
		}
	}
	return -1
}

func (s *State) AddTree(t *Tree) {
	t.ID = s.Entities.Create()
	s.Trees = append(s.Trees, t)
}

// TreeByID resolves a tree entity id, or nil when it is stale or unknown.
func (s *State) TreeByID(id ecs.EntityID) *Tree {
	if !s.Entities.Alive(id) {
		return nil
	}
	for _, t := range s.Trees {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *State) ClearTrees() {
	for _, t := range s.Trees {
		s.Entities.Destroy(t.ID)
	}
	s.Trees = nil
}

// CenterPlayer puts the sprite in the middle of the viewport.
func (s *State) CenterPlayer() {
	s.Player.X = s.Width/2 - SpriteSize/2
	s.Player.Y = s.Height/2 - SpriteSize/2
}

// ClampPlayer keeps the sprite inside the viewport.
func (s *State) ClampPlayer() {
	s.Player.X = clamp(s.Player.X, 0, s.Width-SpriteSize)
	s.Player.Y = clamp(s.Player.Y, 0, s.Height-SpriteSize)
}

// PlaceBase sizes the base footprint to size and puts it just off the
// viewport centre, clamped on screen.
func (s *State) PlaceBase(size float64) {
	s.Base = Rect{
		X: s.Width/2 - size/2 + BaseViewOffset,
		Y: s.Height/2 - size/2 + BaseViewOffset,
		W: size,
		H: size,
	}
	s.Base.X = clamp(s.Base.X, 0, s.Width-size)
	s.Base.Y = clamp(s.Base.Y, 0, s.Height-size)
}

// GrowBase enlarges the base footprint around its centre.
func (s *State) GrowBase() {
	s.Base.W += BaseGrowth
	s.Base.H += BaseGrowth
	s.Base.X -= BaseGrowth / 2
	s.Base.Y -= BaseGrowth / 2
}

// Resize changes the viewport: the player is clamped, collectibles and
// trees left entirely off screen are dropped, and the base is re-placed.
func (s *State) Resize(w, h float64) {
	s.Width, s.Height = w, h
	s.ClampPlayer()

	items := s.Items[:0]
	for _, it := range s.Items {
		if it.Bounds().Visible(w, h) {
			items = append(items, it)
		} else {
			s.Entities.Destroy(it.EntityID())
		}
	}
	s.Items = items

	trees := s.Trees[:0]
	for _, t := range s.Trees {
		if t.Bounds().Visible(w, h) {
			trees = append(trees, t)
		} else {
			s.Entities.Destroy(t.ID)
		}
	}
	s.Trees = trees

	s.PlaceBase(s.Base.W)
}

// PlayerNear reports whether the centres of the player and r are closer
// than d.
func (s *State) PlayerNear(r Rect, d float64) bool {
	px, py := s.Player.Center()
	cx, cy := r.Center()
	return dist(px, py, cx, cy) < d
}
