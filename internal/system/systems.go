package system

import (
	"time"

	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/persist"
)

// Systems is the full set of game systems wired together.
type Systems struct {
	Effects      *EffectQueue
	Alignment    *AlignmentSystem
	Transition   *TransitionSystem
	Messages     *MessageSystem
	Movement     *MovementSystem
	Collectibles *CollectibleSystem
	Blink        *BlinkSystem
	Economy      *EconomySystem
	Progression  *ProgressionSystem
	Harvest      *HarvestSystem
	Legacy       *LegacySystem
}

// New builds every system over d. frameClock is reset by New-Game+.
func New(d Deps, store persist.KVStore, frameClock *coresys.FrameClock, storeTimeout time.Duration) *Systems {
	s := &Systems{}
	s.Economy = NewEconomySystem(d)
	s.Harvest = NewHarvestSystem(d, s.Economy)
	s.Collectibles = NewCollectibleSystem(d)
	s.Transition = NewTransitionSystem(d, s.Collectibles, s.Harvest)
	s.Effects = NewEffectQueue(d.Clock)
	s.Progression = NewProgressionSystem(d, s.Effects, s.Transition)
	s.Movement = NewMovementSystem(d, s.Progression, s.Collectibles)
	s.Messages = NewMessageSystem(d)
	s.Blink = NewBlinkSystem(d)
	s.Alignment = NewAlignmentSystem(d)
	s.Legacy = NewLegacySystem(d, store, s.Harvest, frameClock, storeTimeout)
	return s
}

// Register adds the frame systems to r and installs the transition gate.
// Registration order fixes the order within each phase.
func (s *Systems) Register(r *coresys.Runner) {
	r.Register(s.Effects)
	r.Register(s.Alignment)
	r.Register(s.Transition)
	r.Register(s.Messages)
	r.Register(s.Movement)
	r.Register(s.Collectibles)
	r.Register(s.Blink)
	r.Register(s.Economy)
	r.Register(s.Progression)
	r.Register(s.Harvest)
	r.SetGate(coresys.PhaseUpdate, s.Transition)
}
