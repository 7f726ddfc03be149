package system

import (
	"fmt"
	"math"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/scripting"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// ProgressionSystem owns player and guild leveling and elemental abilities.
// As a frame system it ticks ability cooldowns. Phase 4 (PostUpdate).
type ProgressionSystem struct {
	world      *world.State
	abilities  *data.AbilityTable
	lua        *scripting.Engine
	bus        *event.Bus
	log        *zap.Logger
	effects    *EffectQueue
	transition *TransitionSystem
}

func NewProgressionSystem(d Deps, effects *EffectQueue, transition *TransitionSystem) *ProgressionSystem {
	return &ProgressionSystem{
		world:      d.World,
		abilities:  d.Data.Abilities,
		lua:        d.Lua,
		bus:        d.Bus,
		log:        d.Log,
		effects:    effects,
		transition: transition,
	}
}

func (s *ProgressionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// Update counts down ability cooldowns and forgets expired ones.
func (s *ProgressionSystem) Update(dt time.Duration) {
	for name, left := range s.world.Cooldowns {
		left -= dt
		if left <= 0 {
			delete(s.world.Cooldowns, name)
			continue
		}
		s.world.Cooldowns[name] = left
	}
}

// GainXP adds player XP and levels up for as long as the threshold is met,
// so XP < XPToNextLevel always holds on return. Every XP source (orbs,
// commands, heal ticks) goes through here.
func (s *ProgressionSystem) GainXP(amount int) error {
	if amount <= 0 {
		return reject(s.log, fmt.Errorf("xp: %w, got %d", ErrInvalidAmount, amount))
	}
	p := s.world.Player
	if p.XPToNextLevel <= 0 {
		return reject(s.log, fmt.Errorf("xp: %w, got %d", ErrBadThreshold, p.XPToNextLevel))
	}
	if amount > math.MaxInt-p.XP {
		return reject(s.log, fmt.Errorf("xp: %w, have %d, adding %d", ErrXPOverflow, p.XP, amount))
	}
	p.XP += amount
	for p.XP >= p.XPToNextLevel {
		s.levelUp()
	}
	return nil
}

func (s *ProgressionSystem) levelUp() {
	p := s.world.Player
	p.Level++
	p.XP -= p.XPToNextLevel
	p.XPToNextLevel = s.lua.NextXPThreshold(p.XPToNextLevel)
	p.Speed += s.lua.LevelUpSpeedBonus(p.Level)

	s.log.Info("player leveled up",
		zap.Int("level", p.Level),
		zap.Int("xp_to_next", p.XPToNextLevel),
		zap.Float64("speed", p.Speed))
	event.Emit(s.bus, event.PlayerLeveledUp{Level: p.Level, XPToNextLevel: p.XPToNextLevel, Speed: p.Speed})

	s.transition.CheckWorldTransition()
}

// SetLevel is the admin override: it sets the level, zeroes XP, installs the
// admin threshold and re-checks world unlocks. Speed is left alone.
func (s *ProgressionSystem) SetLevel(level int) error {
	if level < 0 {
		return reject(s.log, fmt.Errorf("%w, got %d", ErrNegativeLevel, level))
	}
	threshold, err := s.lua.AdminXPThreshold(level)
	if err != nil {
		return reject(s.log, fmt.Errorf("%w, got %d: %w", ErrLevelTooHigh, level, err))
	}
	p := s.world.Player
	p.Level = level
	p.XP = 0
	p.XPToNextLevel = threshold
	s.log.Info("player level set", zap.Int("level", level), zap.Int("xp_to_next", p.XPToNextLevel))
	s.transition.CheckWorldTransition()
	return nil
}

// AddGuildXP adds guild XP. At most one guild level is gained per call; any
// surplus carries over.
func (s *ProgressionSystem) AddGuildXP(amount int) error {
	if amount <= 0 {
		return reject(s.log, fmt.Errorf("guild xp: %w, got %d", ErrInvalidAmount, amount))
	}
	g := &s.world.Player.Guild
	if amount > math.MaxInt-g.XP {
		return reject(s.log, fmt.Errorf("guild xp: %w, have %d, adding %d", ErrXPOverflow, g.XP, amount))
	}
	g.XP += amount
	s.log.Debug("guild xp added", zap.Int("amount", amount), zap.Int("xp", g.XP), zap.Int("xp_to_next", g.XPToNextLevel))

	if g.XP >= g.XPToNextLevel {
		g.Level++
		g.XP -= g.XPToNextLevel
		g.XPToNextLevel = s.lua.NextGuildThreshold(g.XPToNextLevel)
		s.world.GuildNotice.Show(fmt.Sprintf("Your Guild leveled up to Level %d!", g.Level))
		s.log.Info("guild leveled up", zap.Int("level", g.Level), zap.Int("xp_to_next", g.XPToNextLevel))
		event.Emit(s.bus, event.GuildLeveledUp{Level: g.Level, XPToNextLevel: g.XPToNextLevel})
	}
	return nil
}

// Recruit adds a member if the roster has room, then grants recruit guild XP.
func (s *ProgressionSystem) Recruit(name string) error {
	g := &s.world.Player.Guild
	switch {
	case name == "":
		return reject(s.log, fmt.Errorf("recruit: %w", ErrEmptyName))
	case g.Full():
		return reject(s.log, fmt.Errorf("%w: %d/%d members, level the guild to recruit more",
			ErrGuildFull, len(g.Members), g.Level+1))
	case g.HasMember(name):
		return reject(s.log, fmt.Errorf("%s: %w", name, ErrAlreadyMember))
	}
	g.Members = append(g.Members, name)
	s.log.Info("guild member recruited", zap.String("member", name), zap.Int("members", len(g.Members)))
	return s.AddGuildXP(world.RecruitGuildXP)
}

// UnlockAbility adds name to the unlocked set when the player qualifies.
func (s *ProgressionSystem) UnlockAbility(name string) error {
	a := s.abilities.Get(name)
	p := s.world.Player
	switch {
	case a == nil:
		return reject(s.log, fmt.Errorf("%q: %w", name, ErrUnknownAbility))
	case p.HasAbility(name):
		return reject(s.log, fmt.Errorf("%s: %w", name, ErrAlreadyUnlocked))
	case p.Level < a.MinLevel:
		return reject(s.log, fmt.Errorf("%s: %w, requires level %d", name, ErrLevelTooLow, a.MinLevel))
	}
	p.Unlocked = append(p.Unlocked, name)
	s.log.Info("ability unlocked", zap.String("ability", name))
	return nil
}

// Cooldown returns the time left before name can be used again.
func (s *ProgressionSystem) Cooldown(name string) time.Duration {
	return s.world.Cooldowns[name]
}

// UseAbility fires an unlocked ability that is off cooldown, starts its
// cooldown and schedules its effect on the effect queue.
func (s *ProgressionSystem) UseAbility(name string) error {
	p := s.world.Player
	if !p.HasAbility(name) {
		return reject(s.log, fmt.Errorf("%q: %w", name, ErrAbilityLocked))
	}
	if left := s.world.Cooldowns[name]; left > 0 {
		return reject(s.log, fmt.Errorf("%s: %w, %ds remaining", name, ErrOnCooldown, int(math.Ceil(left.Seconds()))))
	}
	a := s.abilities.Get(name)
	if a == nil {
		return reject(s.log, fmt.Errorf("%q: %w", name, ErrUnknownAbility))
	}

	s.world.Cooldowns[name] = a.Cooldown
	s.log.Info("ability used", zap.String("ability", name), zap.String("effect", a.Description))
	event.Emit(s.bus, event.AbilityUsed{Name: name, Effect: a.Description})

	eff := a.Effect
	switch eff.Kind {
	case data.EffectSpeedBoost:
		p.SpeedBoost *= eff.Multiplier
		s.effects.After(eff.Duration, name, func() {
			// The player struct is reset in place, so a boost that outlives a
			// New-Game+ still reverts against the fresh character.
			p.SpeedBoost /= eff.Multiplier
			s.log.Debug("speed boost ended", zap.String("ability", name))
		})
	case data.EffectHealOverTime:
		remaining := eff.Budget
		s.effects.Every(eff.Interval, name, func() bool {
			grant := min(eff.Amount, remaining)
			remaining -= grant
			_ = s.GainXP(grant)
			s.log.Debug("heal tick", zap.String("ability", name), zap.Int("xp", grant), zap.Int("remaining", remaining))
			return remaining > 0
		})
	}
	return nil
}
