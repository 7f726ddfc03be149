package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/gelopine/realm/internal/core/ecs"
	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

const woodResource = "wood"

// HarvestSystem spawns, damages and respawns trees. As a frame system it
// runs respawn countdowns. Phase 4 (PostUpdate); keeps running under
// overlays.
type HarvestSystem struct {
	world   *world.State
	economy *EconomySystem
	bus     *event.Bus
	log     *zap.Logger
	rng     *rand.Rand
}

func NewHarvestSystem(d Deps, economy *EconomySystem) *HarvestSystem {
	return &HarvestSystem{world: d.World, economy: economy, bus: d.Bus, log: d.Log, rng: d.Rand}
}

func (s *HarvestSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *HarvestSystem) Update(dt time.Duration) {
	for _, t := range s.world.Trees {
		if !t.Depleted() {
			continue
		}
		t.Respawn -= dt
		if t.Respawn <= 0 {
			t.Health = world.TreeMaxHealth
			t.Respawn = 0
			s.log.Debug("tree respawned", zap.Float64("x", t.X), zap.Float64("y", t.Y))
			event.Emit(s.bus, event.TreeRespawned{X: t.X, Y: t.Y})
		}
	}
}

// SpawnAll replaces every tree with a fresh batch. Each tree tries up to
// TreeSpawnAttempts positions to stay clear of the player and keeps the
// last one tried if none qualifies.
func (s *HarvestSystem) SpawnAll() {
	s.world.ClearTrees()
	p := s.world.Player
	maxX := s.world.Width - world.TreeSize
	maxY := s.world.Height - world.TreeSize

	for i := 0; i < world.TreesPerWorld; i++ {
		x, y := randCoord(s.rng, maxX), randCoord(s.rng, maxY)
		for attempt := 0; attempt < world.TreeSpawnAttempts; attempt++ {
			x, y = randCoord(s.rng, maxX), randCoord(s.rng, maxY)
			if math.Hypot(x-p.X, y-p.Y) > world.TreeMinPlayerDist {
				break
			}
		}
		s.world.AddTree(&world.Tree{X: x, Y: y, Health: world.TreeMaxHealth})
	}
	s.log.Debug("trees spawned", zap.Int("count", len(s.world.Trees)), zap.Int("world", s.world.CurrentWorld))
}

// Clear removes every tree.
func (s *HarvestSystem) Clear() {
	s.world.ClearTrees()
	s.log.Debug("trees cleared")
}

// Interact hits the tree with entity id once. Depleting it pays out wood and
// starts the respawn countdown. Reports whether a live tree took the hit;
// ids of cleared trees resolve to nothing.
func (s *HarvestSystem) Interact(id ecs.EntityID) bool {
	t := s.world.TreeByID(id)
	if t == nil {
		s.log.Debug("stale tree id", zap.Uint32("index", id.Index()), zap.Uint32("generation", id.Generation()))
		return false
	}
	if t.Depleted() {
		return false
	}
	t.Health -= world.TreeDamage
	if t.Health > 0 {
		return true
	}
	t.Health = 0
	t.Respawn = world.TreeRespawnTime
	_ = s.economy.CollectResource(woodResource, world.WoodPerTree)
	s.log.Debug("tree chopped down", zap.Float64("x", t.X), zap.Float64("y", t.Y))
	event.Emit(s.bus, event.TreeDepleted{X: t.X, Y: t.Y})
	return true
}

// InteractNearby hits every live tree within reach of the player and returns
// how many were hit.
func (s *HarvestSystem) InteractNearby() int {
	var ids []ecs.EntityID
	for _, t := range s.world.Trees {
		if !t.Depleted() && s.world.PlayerNear(t.Bounds(), world.InteractionDistance) {
			ids = append(ids, t.ID)
		}
	}
	n := 0
	for _, id := range ids {
		if s.Interact(id) {
			n++
		}
	}
	return n
}
