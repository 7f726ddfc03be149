package system

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// CollectibleSystem keeps the XP orb and memory populations topped up and
// records found memories. Phase 4 (PostUpdate); paused with the overlays.
type CollectibleSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
	rng   *rand.Rand
}

func NewCollectibleSystem(d Deps) *CollectibleSystem {
	return &CollectibleSystem{world: d.World, bus: d.Bus, log: d.Log, rng: d.Rand}
}

func (s *CollectibleSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CollectibleSystem) Update(_ time.Duration) {
	if s.world.UI.Paused() {
		return
	}
	s.Refill()
}

// Refill adds at most one orb and one memory.
func (s *CollectibleSystem) Refill() {
	s.SpawnOrb()
	s.SpawnMemory()
}

// SpawnInitial fills a freshly entered world.
func (s *CollectibleSystem) SpawnInitial() {
	for i := 0; i < world.MaxOrbs; i++ {
		s.SpawnOrb()
	}
	s.SpawnMemory()
}

// OrbCap is the orb population limit under the active alignment.
func (s *CollectibleSystem) OrbCap() int {
	return int(math.Floor(world.MaxOrbs * s.world.Alignment.SpawnRate()))
}

// SpawnOrb places one orb at a random position if below the cap.
func (s *CollectibleSystem) SpawnOrb() bool {
	if s.world.OrbCount() >= s.OrbCap() {
		return false
	}
	s.world.AddItem(&world.XPOrb{
		X: randCoord(s.rng, s.world.Width-world.OrbSize),
		Y: randCoord(s.rng, s.world.Height-world.OrbSize),
	})
	return true
}

// SpawnMemory places a random unfound memory that is not already on screen.
func (s *CollectibleSystem) SpawnMemory() bool {
	if s.world.MemoryItemCount() >= world.MaxMemoryItems {
		return false
	}
	var unfound []*world.Memory
	for _, m := range s.world.Memories {
		if !m.Found {
			unfound = append(unfound, m)
		}
	}
	if len(unfound) == 0 {
		return false
	}
	m := unfound[s.rng.Intn(len(unfound))]
	if s.world.MemoryItemIndex(m.ID) >= 0 {
		return false
	}
	s.world.AddItem(&world.MemoryItem{
		MemoryID: m.ID,
		Size:     m.Size,
		X:        randCoord(s.rng, s.world.Width-m.Size),
		Y:        randCoord(s.rng, s.world.Height-m.Size),
	})
	return true
}

// CollectMemory marks a memory found, shows its narrative and removes its
// world item if one is on screen.
func (s *CollectibleSystem) CollectMemory(id string) error {
	m := s.world.Memory(id)
	if m == nil {
		return reject(s.log, fmt.Errorf("%q: %w", id, ErrUnknownMemory))
	}
	if m.Found {
		return reject(s.log, fmt.Errorf("%s: %w", id, ErrMemoryAlreadyFound))
	}
	m.Found = true
	p := s.world.Player
	p.MemoriesFound = append(p.MemoriesFound, id)
	if i := s.world.MemoryItemIndex(id); i >= 0 {
		s.world.RemoveItemAt(i)
	}
	s.world.Narrative.Show(m.Narrative)

	all := s.world.AllMemoriesFound()
	s.log.Info("memory found", zap.String("id", id), zap.Bool("all_found", all))
	event.Emit(s.bus, event.MemoryFound{ID: id, Narrative: m.Narrative, AllFound: all})
	return nil
}

// Unfound lists memory ids not yet found, in catalog order.
func (s *CollectibleSystem) Unfound() []string {
	var ids []string
	for _, m := range s.world.Memories {
		if !m.Found {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
