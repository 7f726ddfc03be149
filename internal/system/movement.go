package system

import (
	"time"

	"github.com/gelopine/realm/internal/core/ecs"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/world"
)

// MovementSystem applies held movement intents and resolves collisions
// between the player's hitbox and collectibles. Phase 3 (Update); paused with
// the overlays.
type MovementSystem struct {
	world        *world.State
	progression  *ProgressionSystem
	collectibles *CollectibleSystem
}

func NewMovementSystem(d Deps, progression *ProgressionSystem, collectibles *CollectibleSystem) *MovementSystem {
	return &MovementSystem{world: d.World, progression: progression, collectibles: collectibles}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	if s.world.UI.Paused() {
		return
	}
	s.move(dt)
	s.collide()
}

func (s *MovementSystem) move(dt time.Duration) {
	p := s.world.Player
	in := s.world.Intents
	step := p.EffectiveSpeed() * (float64(dt) / float64(world.FrameBaseline)) * s.world.Alignment.SpeedMultiplier()

	if in.Up {
		p.Y -= step
	}
	if in.Down {
		p.Y += step
	}
	if in.Left {
		p.X -= step
	}
	if in.Right {
		p.X += step
	}
	s.world.ClampPlayer()
}

// collide gathers the ids of every item under the hitbox first, then
// resolves each one again before consuming it; an id consumed or cleared by
// an earlier pickup in the same pass no longer resolves.
func (s *MovementSystem) collide() {
	hb := s.world.Player.Hitbox()
	var hits []ecs.EntityID
	for _, it := range s.world.Items {
		if hb.Intersects(it.Bounds()) {
			hits = append(hits, it.EntityID())
		}
	}
	for _, id := range hits {
		i := s.world.ItemIndex(id)
		if i < 0 {
			continue
		}
		switch v := s.world.Items[i].(type) {
		case *world.XPOrb:
			s.world.RemoveItemAt(i)
			_ = s.progression.GainXP(world.XPPerOrb)
		case *world.MemoryItem:
			_ = s.collectibles.CollectMemory(v.MemoryID)
		}
	}
}

// BlinkSystem animates the sprite's eyes: closed for BlinkDuration every
// BlinkInterval. Phase 4 (PostUpdate); paused with the overlays.
type BlinkSystem struct {
	world *world.State
}

func NewBlinkSystem(d Deps) *BlinkSystem { return &BlinkSystem{world: d.World} }

func (s *BlinkSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *BlinkSystem) Update(dt time.Duration) {
	if s.world.UI.Paused() {
		return
	}
	p := s.world.Player
	p.BlinkTimer += dt
	limit := world.BlinkInterval
	if p.Blinking {
		limit = world.BlinkDuration
	}
	if p.BlinkTimer >= limit {
		p.Blinking = !p.Blinking
		p.BlinkTimer = 0
	}
}

// MessageSystem expires the narrative and guild notice texts. Phase 3
// (Update); keeps running under overlays.
type MessageSystem struct {
	world *world.State
}

func NewMessageSystem(d Deps) *MessageSystem { return &MessageSystem{world: d.World} }

func (s *MessageSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MessageSystem) Update(dt time.Duration) {
	s.world.Narrative.Advance(dt, world.NarrativeShown)
	s.world.GuildNotice.Advance(dt, world.GuildNoticeShown)
}
