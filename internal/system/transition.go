package system

import (
	"fmt"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// TransitionSystem drives the fadingOut → displayingText → fadingIn world
// change. Phase 2 (Transition). It is also the runner's suspension gate:
// a frame that begins with a transition in progress skips every later phase.
type TransitionSystem struct {
	world        *world.State
	worlds       *data.WorldTable
	bus          *event.Bus
	log          *zap.Logger
	collectibles *CollectibleSystem
	harvest      *HarvestSystem

	suspended bool
}

func NewTransitionSystem(d Deps, collectibles *CollectibleSystem, harvest *HarvestSystem) *TransitionSystem {
	return &TransitionSystem{
		world:        d.World,
		worlds:       d.Data.Worlds,
		bus:          d.Bus,
		log:          d.Log,
		collectibles: collectibles,
		harvest:      harvest,
	}
}

func (s *TransitionSystem) Phase() coresys.Phase { return coresys.PhaseTransition }

// Suspended implements coresys.Gate.
func (s *TransitionSystem) Suspended() bool { return s.suspended }

func (s *TransitionSystem) Update(dt time.Duration) {
	tr := &s.world.Transition
	s.suspended = tr.Active()
	if !s.suspended {
		return
	}

	tr.Elapsed += dt
	switch tr.Phase {
	case world.TransitionFadingOut:
		if tr.Elapsed >= world.FadeDuration {
			tr.Phase = world.TransitionDisplayingText
			tr.Elapsed = 0
			s.repopulate()
		}
	case world.TransitionDisplayingText:
		if tr.Elapsed >= world.TextDisplayDuration {
			tr.Phase = world.TransitionFadingIn
			tr.Elapsed = 0
		}
	case world.TransitionFadingIn:
		if tr.Elapsed >= world.FadeDuration {
			tr.Phase = world.TransitionIdle
			tr.Elapsed = 0
			s.log.Info("transition complete", zap.String("world", tr.WorldName))
			event.Emit(s.bus, event.TransitionCompleted{WorldIndex: s.world.CurrentWorld, WorldName: tr.WorldName})
		}
	}
}

// repopulate swaps old-world content for the new world's while the screen
// is black.
func (s *TransitionSystem) repopulate() {
	s.world.ClearItems()
	s.world.CenterPlayer()
	s.collectibles.SpawnInitial()
	s.harvest.SpawnAll()
}

// CheckWorldTransition starts an automatic transition when the player's
// level satisfies the next catalog world. It only ever moves one world
// forward. Reports whether a transition started.
func (s *TransitionSystem) CheckWorldTransition() bool {
	next := s.world.CurrentWorld + 1
	w := s.worlds.Get(next)
	if w == nil || s.world.Player.Level < w.MinPlayerLevel {
		return false
	}
	s.start(w, true)
	return true
}

// Teleport starts a transition to the world at index. Selecting the current
// world is accepted but starts nothing.
func (s *TransitionSystem) Teleport(index int) (bool, error) {
	w := s.worlds.Get(index)
	if w == nil {
		return false, reject(s.log, fmt.Errorf("%w: %d (0-%d)", ErrInvalidWorld, index, s.worlds.Count()-1))
	}
	if s.world.Player.Level < w.MinPlayerLevel {
		return false, reject(s.log, fmt.Errorf("%s: %w, requires player level %d", w.Name, ErrWorldLocked, w.MinPlayerLevel))
	}
	if index == s.world.CurrentWorld {
		s.log.Info("already in world", zap.String("world", w.Name))
		return false, nil
	}
	s.start(w, false)
	return true, nil
}

// start commits the target index immediately so its name is right for the
// whole transition; content is swapped at the fadingOut boundary.
func (s *TransitionSystem) start(w *data.WorldInfo, automatic bool) {
	s.world.CurrentWorld = w.Index
	s.world.Transition.Start(w.Name)
	s.log.Info("transition started", zap.String("world", w.Name), zap.Bool("automatic", automatic))
	event.Emit(s.bus, event.TransitionStarted{WorldIndex: w.Index, WorldName: w.Name, Automatic: automatic})
}
