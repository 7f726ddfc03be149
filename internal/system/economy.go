package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// masterCrafterFactor scales craft time for a Master Crafter legacy.
const masterCrafterFactor = 0.9

// EconomySystem owns the inventory ledger, crafting and base building. As a
// frame system it advances the head of the crafting queue. Phase 4
// (PostUpdate); keeps running under overlays.
type EconomySystem struct {
	world     *world.State
	recipes   *data.RecipeTable
	resources *data.ResourceTable
	baseCosts *data.BaseCostTable
	bus       *event.Bus
	log       *zap.Logger
}

func NewEconomySystem(d Deps) *EconomySystem {
	return &EconomySystem{
		world:     d.World,
		recipes:   d.Data.Recipes,
		resources: d.Data.Resources,
		baseCosts: d.Data.BaseCosts,
		bus:       d.Bus,
		log:       d.Log,
	}
}

func (s *EconomySystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Update runs the head job only. A job still running blocks the rest.
func (s *EconomySystem) Update(dt time.Duration) {
	q := s.world.CraftQueue
	if len(q) == 0 {
		return
	}
	head := q[0]
	head.Remaining -= dt
	if head.Remaining > 0 {
		return
	}
	s.world.CraftQueue = q[1:]

	inv := s.world.Player.Inventory
	yields := make(map[string]int, len(head.Yields))
	for _, y := range head.Yields {
		inv.Add(y.Item, y.Count)
		yields[y.Item] = y.Count
	}
	s.log.Info("crafting finished", zap.String("recipe", head.Recipe), zap.Any("yields", yields))
	event.Emit(s.bus, event.CraftCompleted{Recipe: head.Recipe, Yields: yields})
}

// CollectResource adds amount of a known resource type. The type is
// case-insensitive.
func (s *EconomySystem) CollectResource(kind string, amount int) error {
	kind = strings.ToLower(kind)
	if !s.resources.IsResource(kind) {
		return reject(s.log, fmt.Errorf("%q: %w, available: %s", kind, ErrUnknownResource,
			strings.Join(s.resources.Types(), ", ")))
	}
	if amount <= 0 {
		return reject(s.log, fmt.Errorf("collect %s: %w, got %d", kind, ErrInvalidAmount, amount))
	}
	inv := s.world.Player.Inventory
	inv.Add(kind, amount)
	s.log.Debug("resource collected", zap.String("resource", kind), zap.Int("amount", amount), zap.Int("total", inv.Count(kind)))
	return nil
}

// CraftItem pays for a recipe up front and queues the job.
func (s *EconomySystem) CraftItem(name string) error {
	r := s.recipes.Get(name)
	if r == nil {
		return reject(s.log, fmt.Errorf("%q: %w, available: %s", name, ErrUnknownRecipe,
			strings.Join(s.recipes.Names(), ", ")))
	}
	inv := s.world.Player.Inventory
	if err := checkMaterials(inv, r.Materials); err != nil {
		return reject(s.log, fmt.Errorf("craft %s: %w", name, err))
	}
	for _, m := range r.Materials {
		inv.Remove(m.Item, m.Count)
	}

	d := r.Time
	if s.world.Player.Legacy.HasSkill(world.LegacySkillMasterCrafter) {
		d = time.Duration(float64(d) * masterCrafterFactor)
	}
	s.world.CraftQueue = append(s.world.CraftQueue, &world.CraftJob{Recipe: name, Remaining: d, Yields: r.Yields})

	n := len(s.world.CraftQueue)
	s.log.Info("crafting started", zap.String("recipe", name), zap.Duration("time", d), zap.Int("queue", n))
	event.Emit(s.bus, event.CraftQueued{Recipe: name, Duration: d, QueueLength: n})
	return nil
}

// UpgradeBase buys the next base level with XP and materials.
func (s *EconomySystem) UpgradeBase() error {
	p := s.world.Player
	target := p.BaseLevel + 1
	cost := s.baseCosts.ForTarget(target)
	if cost == nil {
		return reject(s.log, fmt.Errorf("%w (%d)", ErrMaxBaseLevel, p.BaseLevel))
	}
	if p.XP < cost.XP {
		return reject(s.log, fmt.Errorf("base level %d: %w, need %d have %d", target, ErrInsufficientXP, cost.XP, p.XP))
	}
	if err := checkMaterials(p.Inventory, cost.Materials); err != nil {
		return reject(s.log, fmt.Errorf("base level %d: %w", target, err))
	}

	p.XP -= cost.XP
	for _, m := range cost.Materials {
		p.Inventory.Remove(m.Item, m.Count)
	}
	p.BaseLevel = target
	s.world.GrowBase()

	s.log.Info("base upgraded", zap.Int("level", target))
	event.Emit(s.bus, event.BaseUpgraded{Level: target})
	return nil
}

// checkMaterials verifies every requirement before anything is deducted.
func checkMaterials(inv *world.Inventory, need []data.ItemAmount) error {
	for _, m := range need {
		if !inv.Has(m.Item, m.Count) {
			return fmt.Errorf("%w: %s need %d have %d", ErrInsufficientMaterials, m.Item, m.Count, inv.Count(m.Item))
		}
	}
	return nil
}
