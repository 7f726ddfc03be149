package system

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelopine/realm/internal/core/event"
	"github.com/gelopine/realm/internal/scripting"
)

func TestGainXPFreshPlayer(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.GainXP(100))

	p := h.world.Player
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 150, p.XPToNextLevel)
	assert.Equal(t, 5.5, p.Speed)
}

func TestGainXPCascades(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.GainXP(1000))

	p := h.world.Player
	// 100 + 150 + 225 + 337 = 812 spent on four levels.
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, 188, p.XP)
	assert.Equal(t, 505, p.XPToNextLevel)
	assert.Equal(t, 1, h.world.CurrentWorld, "level 3 unlocked the next world")
}

func TestGainXPKeepsXPBelowThreshold(t *testing.T) {
	h := newHarness(t)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		require.NoError(t, h.Progression.GainXP(1+r.Intn(400)))
		p := h.world.Player
		require.Less(t, p.XP, p.XPToNextLevel)
		require.GreaterOrEqual(t, p.XP, 0)
	}
}

func TestGainXPRejectsNonPositive(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.Progression.GainXP(0), ErrInvalidAmount)
	assert.ErrorIs(t, h.Progression.GainXP(-5), ErrInvalidAmount)
	assert.Equal(t, 0, h.world.Player.XP)
}

func TestSetLevel(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.GainXP(60))
	require.NoError(t, h.Progression.SetLevel(5))

	p := h.world.Player
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 350, p.XPToNextLevel)
	assert.Equal(t, 5.0, p.Speed, "admin override leaves speed alone")
	assert.Equal(t, 1, h.world.CurrentWorld)
	assert.True(t, h.world.Transition.Active())

	assert.ErrorIs(t, h.Progression.SetLevel(-1), ErrNegativeLevel)
	assert.Equal(t, 5, p.Level)
}

func TestSetLevelRejectsUnrepresentableThreshold(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.SetLevel(5))

	err := h.Progression.SetLevel(200_000_000_000_000_000)
	assert.ErrorIs(t, err, ErrLevelTooHigh)
	assert.ErrorIs(t, err, scripting.ErrOutOfRange)
	p := h.world.Player
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, 350, p.XPToNextLevel)

	done := make(chan error, 1)
	go func() { done <- h.Progression.GainXP(1) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("GainXP did not return")
	}
	assert.Equal(t, 1, p.XP)
}

func TestGainXPRefusesNonPositiveThreshold(t *testing.T) {
	h := newHarness(t)
	p := h.world.Player
	p.XPToNextLevel = math.MinInt

	assert.ErrorIs(t, h.Progression.GainXP(1), ErrBadThreshold)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 0, p.Level)
}

func TestGainXPRejectsOverflow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.GainXP(math.MaxInt))
	p := h.world.Player
	level, xp, next := p.Level, p.XP, p.XPToNextLevel
	require.Positive(t, xp)

	assert.ErrorIs(t, h.Progression.GainXP(math.MaxInt), ErrXPOverflow)
	assert.Equal(t, level, p.Level)
	assert.Equal(t, xp, p.XP)
	assert.Equal(t, next, p.XPToNextLevel)
	assert.Less(t, p.XP, p.XPToNextLevel)
}

func TestAddGuildXPRejectsOverflow(t *testing.T) {
	h := newHarness(t)
	g := &h.world.Player.Guild
	require.NoError(t, h.Progression.AddGuildXP(100))

	assert.ErrorIs(t, h.Progression.AddGuildXP(math.MaxInt), ErrXPOverflow)
	assert.Equal(t, 100, g.XP)
	assert.Equal(t, 0, g.Level)
}

func TestAutomaticTransitionMovesOneWorldAtATime(t *testing.T) {
	h := newHarness(t)
	seen := collect[event.TransitionStarted](h)

	require.NoError(t, h.Progression.SetLevel(10))
	assert.Equal(t, 1, h.world.CurrentWorld)
	require.NoError(t, h.Progression.SetLevel(10))
	assert.Equal(t, 2, h.world.CurrentWorld)
	require.NoError(t, h.Progression.SetLevel(10))
	assert.Equal(t, 2, h.world.CurrentWorld, "never past the last world")

	starts := seen()
	require.Len(t, starts, 2)
	for _, s := range starts {
		assert.True(t, s.Automatic)
	}
}

func TestAddGuildXP(t *testing.T) {
	h := newHarness(t)
	g := &h.world.Player.Guild

	require.NoError(t, h.Progression.AddGuildXP(250))
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 50, g.XP)
	assert.Equal(t, 360, g.XPToNextLevel)
	assert.Equal(t, "Your Guild leveled up to Level 1!", h.world.GuildNotice.Text)

	// One guild level per call; the surplus waits for the next call.
	require.NoError(t, h.Progression.AddGuildXP(1000))
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, 690, g.XP)
	assert.Equal(t, 648, g.XPToNextLevel)

	assert.ErrorIs(t, h.Progression.AddGuildXP(0), ErrInvalidAmount)
}

func TestRecruit(t *testing.T) {
	h := newHarness(t)
	g := &h.world.Player.Guild

	require.NoError(t, h.Progression.Recruit("Ana"))
	assert.Equal(t, []string{"Ana"}, g.Members)
	assert.Equal(t, 50, g.XP)

	assert.ErrorIs(t, h.Progression.Recruit("Bo"), ErrGuildFull)

	require.NoError(t, h.Progression.AddGuildXP(150))
	require.Equal(t, 1, g.Level)
	assert.ErrorIs(t, h.Progression.Recruit("Ana"), ErrAlreadyMember)
	assert.ErrorIs(t, h.Progression.Recruit(""), ErrEmptyName)
	require.NoError(t, h.Progression.Recruit("Bo"))
	assert.Len(t, g.Members, 2)
}

func TestUnlockAbility(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.Progression.UnlockAbility("Fireball"), ErrUnknownAbility)
	assert.ErrorIs(t, h.Progression.UnlockAbility("Wind Gust"), ErrLevelTooLow)

	require.NoError(t, h.Progression.SetLevel(1))
	require.NoError(t, h.Progression.UnlockAbility("Wind Gust"))
	assert.ErrorIs(t, h.Progression.UnlockAbility("Wind Gust"), ErrAlreadyUnlocked)
	assert.ErrorIs(t, h.Progression.UnlockAbility("Stone Wall"), ErrLevelTooLow)
	assert.Equal(t, []string{"Wind Gust"}, h.world.Player.Unlocked)
}

func TestUseAbilityCooldown(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.Progression.UseAbility("Wind Gust"), ErrAbilityLocked)

	require.NoError(t, h.Progression.SetLevel(1))
	require.NoError(t, h.Progression.UnlockAbility("Wind Gust"))
	require.NoError(t, h.Progression.UseAbility("Wind Gust"))
	assert.Equal(t, 5*time.Second, h.Progression.Cooldown("Wind Gust"))
	assert.ErrorIs(t, h.Progression.UseAbility("Wind Gust"), ErrOnCooldown)

	h.Progression.Update(4 * time.Second)
	assert.ErrorIs(t, h.Progression.UseAbility("Wind Gust"), ErrOnCooldown)
	h.Progression.Update(time.Second)
	assert.Zero(t, h.Progression.Cooldown("Wind Gust"))
	assert.NoError(t, h.Progression.UseAbility("Wind Gust"))
}

func TestWindGustBoostReverts(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.SetLevel(1))
	require.NoError(t, h.Progression.UnlockAbility("Wind Gust"))
	require.NoError(t, h.Progression.UseAbility("Wind Gust"))

	p := h.world.Player
	assert.Equal(t, 10.0, p.EffectiveSpeed())

	// A level-up during the boost is kept after the revert.
	require.NoError(t, h.Progression.GainXP(p.XPToNextLevel))
	assert.Equal(t, 11.0, p.EffectiveSpeed())

	h.clock.Advance(999 * time.Millisecond)
	h.Effects.Update(0)
	assert.Equal(t, 2.0, p.SpeedBoost)

	h.clock.Advance(time.Millisecond)
	h.Effects.Update(0)
	assert.Equal(t, 1.0, p.SpeedBoost)
	assert.Equal(t, 5.5, p.EffectiveSpeed())
	assert.Zero(t, h.Effects.Pending())
}

func TestHealingBloomGrantsBudget(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.SetLevel(7))
	require.NoError(t, h.Progression.UnlockAbility("Healing Bloom"))
	require.NoError(t, h.Progression.UseAbility("Healing Bloom"))

	p := h.world.Player
	for i := 1; i <= 5; i++ {
		h.clock.Advance(500 * time.Millisecond)
		h.Effects.Update(0)
		assert.Equal(t, 10*i, p.XP)
	}
	assert.Zero(t, h.Effects.Pending())

	h.clock.Advance(time.Second)
	h.Effects.Update(0)
	assert.Equal(t, 50, p.XP)
}

func TestHealingBloomCatchesUp(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.Progression.SetLevel(7))
	require.NoError(t, h.Progression.UnlockAbility("Healing Bloom"))
	require.NoError(t, h.Progression.UseAbility("Healing Bloom"))

	h.clock.Advance(10 * time.Second)
	h.Effects.Update(0)
	assert.Equal(t, 50, h.world.Player.XP)
}

func TestHealTickLevelsUpThroughGainXP(t *testing.T) {
	h := newHarness(t)
	levels := collect[event.PlayerLeveledUp](h)

	require.NoError(t, h.Progression.SetLevel(7))
	require.NoError(t, h.Progression.UnlockAbility("Healing Bloom"))
	require.NoError(t, h.Progression.GainXP(445))
	require.NoError(t, h.Progression.UseAbility("Healing Bloom"))

	h.clock.Advance(500 * time.Millisecond)
	h.Effects.Update(0)

	p := h.world.Player
	assert.Equal(t, 8, p.Level)
	assert.Equal(t, 5, p.XP)
	assert.Equal(t, 675, p.XPToNextLevel)
	require.Len(t, levels(), 1)
}
