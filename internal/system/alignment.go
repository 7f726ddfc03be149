package system

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// AlignmentSystem rolls a cosmic alignment every check interval when none is
// active and ends the active one when its duration is up. Phase 1
// (Schedule); runs during world transitions too.
type AlignmentSystem struct {
	world   *world.State
	catalog *data.AlignmentTable
	bus     *event.Bus
	log     *zap.Logger
	rng     *rand.Rand
}

func NewAlignmentSystem(d Deps) *AlignmentSystem {
	return &AlignmentSystem{world: d.World, catalog: d.Data.Alignments, bus: d.Bus, log: d.Log, rng: d.Rand}
}

func (s *AlignmentSystem) Phase() coresys.Phase { return coresys.PhaseSchedule }

func (s *AlignmentSystem) Update(dt time.Duration) {
	a := &s.world.Alignment
	if a.Active != nil {
		a.Elapsed += dt
	}
	a.SinceCheck += dt
	if a.SinceCheck >= s.catalog.CheckInterval {
		a.SinceCheck = 0
		_ = s.Trigger()
	}
	if a.Active != nil && a.Elapsed >= a.Active.Duration {
		name := a.Active.Name
		a.Active = nil
		a.Elapsed = 0
		s.log.Info("cosmic alignment ended", zap.String("name", name))
		event.Emit(s.bus, event.AlignmentEnded{Name: name})
	}
}

// Trigger starts a uniformly chosen alignment if none is active.
func (s *AlignmentSystem) Trigger() error {
	a := &s.world.Alignment
	if a.Active != nil {
		err := fmt.Errorf("%w: %s, %ds left", ErrAlignmentActive, a.Active.Name, a.RemainingSeconds())
		s.log.Info(err.Error())
		return err
	}
	all := s.catalog.All()
	if len(all) == 0 {
		return ErrNoAlignments
	}
	a.Active = all[s.rng.Intn(len(all))]
	a.Elapsed = 0
	s.log.Info("cosmic alignment begun", zap.String("name", a.Active.Name), zap.String("effect", a.Active.Description))
	event.Emit(s.bus, event.AlignmentStarted{Name: a.Active.Name, Description: a.Active.Description, Duration: a.Active.Duration})
	return nil
}
