package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/persist"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// LegacyKey is the store key of the New-Game+ record.
const LegacyKey = "gameLegacy"

// LegacySystem saves, loads and applies the New-Game+ legacy record and
// performs the New-Game+ reset. It is not a frame system.
type LegacySystem struct {
	world        *world.State
	store        persist.KVStore
	bus          *event.Bus
	log          *zap.Logger
	harvest      *HarvestSystem
	frameClock   *coresys.FrameClock
	storeTimeout time.Duration
}

func NewLegacySystem(d Deps, store persist.KVStore, harvest *HarvestSystem, frameClock *coresys.FrameClock, storeTimeout time.Duration) *LegacySystem {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &LegacySystem{
		world:        d.World,
		store:        store,
		bus:          d.Bus,
		log:          d.Log,
		harvest:      harvest,
		frameClock:   frameClock,
		storeTimeout: storeTimeout,
	}
}

// Record builds the bonus record earned by the current playthrough.
func (s *LegacySystem) Record() world.Legacy {
	return world.Legacy{
		UniqueSkill:  world.LegacySkillMasterCrafter,
		StartingItem: world.LegacyItemAncientCompass,
		BonusStat:    world.LegacyStatSpeed,
	}
}

// Save writes the legacy record. A failure is reported to the player through
// a Notice event and returned, never fatal.
func (s *LegacySystem) Save(ctx context.Context) error {
	rec := s.Record()
	return s.save(ctx, &rec)
}

func (s *LegacySystem) save(ctx context.Context, rec *world.Legacy) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode legacy: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Put(ctx, LegacyKey, raw); err != nil {
		s.log.Error("legacy save failed", zap.Error(err))
		event.Emit(s.bus, event.Notice{Text: "Failed to save game legacy. Please check that storage is available."})
		return fmt.Errorf("save legacy: %w", err)
	}
	s.log.Info("legacy saved")
	return nil
}

// Load reads the stored record and applies it to the player. A missing,
// unreadable or malformed record means no legacy: the player keeps none and
// nil is returned.
func (s *LegacySystem) Load(ctx context.Context) *world.Legacy {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	p := s.world.Player
	raw, err := s.store.Get(ctx, LegacyKey)
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			s.log.Warn("legacy unreadable, starting without one", zap.Error(err))
		}
		p.Legacy = nil
		return nil
	}
	var rec world.Legacy
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn("legacy malformed, starting without one", zap.Error(err))
		p.Legacy = nil
		return nil
	}
	if rec.Empty() {
		s.log.Warn("legacy record carries no tags, starting without one", zap.ByteString("raw", raw))
		p.Legacy = nil
		return nil
	}
	s.apply(&rec)
	return &rec
}

// apply installs rec on the player and grants its stat bonus. Unknown tags
// are ignored.
func (s *LegacySystem) apply(rec *world.Legacy) {
	p := s.world.Player
	p.Legacy = rec
	if rec.BonusStat == world.LegacyStatSpeed {
		p.Speed += world.LegacySpeedBonus
		s.log.Info("legacy speed bonus applied", zap.Float64("speed", p.Speed))
	}
	if rec.UniqueSkill == world.LegacySkillMasterCrafter {
		s.log.Info("master crafter legacy: crafting times reduced by 10%")
	}
}

// NewGamePlus saves the legacy, resets the game to a fresh start keeping the
// player's name, then applies the new legacy. The reset happens even if the
// save fails; the save error is returned afterwards. Already scheduled
// ability effects are left running.
func (s *LegacySystem) NewGamePlus(ctx context.Context) error {
	rec := s.Record()
	saveErr := s.save(ctx, &rec)

	s.world.Reset()
	s.harvest.SpawnAll()
	s.frameClock.Reset()
	s.apply(&rec)

	s.log.Info("new game+ started", zap.String("player", s.world.Player.Name))
	return saveErr
}
