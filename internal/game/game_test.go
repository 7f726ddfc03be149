package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gelopine/realm/internal/core/ecs"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/persist"
	"github.com/gelopine/realm/internal/scripting"
	"github.com/gelopine/realm/internal/system"
	"github.com/gelopine/realm/internal/world"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type session struct {
	*Game
	clock *fakeClock
	store *persist.MemoryStore
	ts    time.Duration
}

func newSession(t *testing.T, store *persist.MemoryStore) *session {
	t.Helper()
	log := zaptest.NewLogger(t)
	lua, err := scripting.NewEngine("", log)
	require.NoError(t, err)
	t.Cleanup(lua.Close)
	if store == nil {
		store = persist.NewMemoryStore()
	}
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	g := New(context.Background(), Options{
		PlayerName:   "Wren",
		Width:        1280,
		Height:       720,
		Seed:         11,
		StoreTimeout: time.Second,
		Tables:       data.MustLoadEmbedded(),
		Lua:          lua,
		Store:        store,
		Clock:        clock,
		Log:          log,
	})
	return &session{Game: g, clock: clock, store: store}
}

// step runs one frame dt after the previous one.
func (s *session) step(dt time.Duration) {
	s.ts += dt
	s.clock.now = s.clock.now.Add(dt)
	s.Frame(s.ts)
}

func TestNewPopulatesFirstWorld(t *testing.T) {
	s := newSession(t, nil)
	snap := s.Snapshot()
	assert.Equal(t, "Grassy Plains", snap.World)
	assert.Len(t, snap.Orbs, world.MaxOrbs)
	assert.Len(t, snap.Memories, 1)
	assert.Len(t, snap.Trees, world.TreesPerWorld)
	assert.Equal(t, world.BaseSpeed, snap.Speed)
	assert.Equal(t, "Wren's Guild", snap.GuildName)
	assert.Nil(t, s.State.Player.Legacy)
}

func TestSnapshotKeysAreStableEntityIDs(t *testing.T) {
	s := newSession(t, nil)
	first := s.Snapshot()
	seen := map[ecs.EntityID]bool{}
	for _, it := range append(first.Orbs, first.Memories...) {
		require.NotZero(t, it.ID)
		assert.False(t, seen[it.ID])
		seen[it.ID] = true
	}
	for _, tr := range first.Trees {
		assert.False(t, seen[tr.ID])
		seen[tr.ID] = true
	}

	s.step(time.Second)
	second := s.Snapshot()
	assert.Equal(t, first.Trees[0].ID, second.Trees[0].ID)

	_, err := s.Command(context.Background(), "spawntrees")
	require.NoError(t, err)
	third := s.Snapshot()
	for _, tr := range third.Trees {
		assert.False(t, seen[tr.ID], "respawned trees get fresh ids")
		assert.Nil(t, s.State.TreeByID(first.Trees[0].ID))
	}
}

func TestStatsCountQueuedWork(t *testing.T) {
	s := newSession(t, nil)
	st := s.Stats()
	assert.Equal(t, world.MaxOrbs+1+world.TreesPerWorld, st.Entities)
	assert.Zero(t, st.PendingEvents)
	assert.Zero(t, st.PendingEffects)

	require.NoError(t, s.Systems.Progression.SetLevel(1))
	require.NoError(t, s.Systems.Progression.UnlockAbility("Wind Gust"))
	require.NoError(t, s.Systems.Progression.UseAbility("Wind Gust"))
	st = s.Stats()
	assert.Equal(t, 1, st.PendingEvents)
	assert.Equal(t, 1, st.PendingEffects)

	s.step(2 * time.Second)
	assert.Zero(t, s.Stats().PendingEffects)
}

func TestNewAppliesStoredLegacy(t *testing.T) {
	store := persist.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), system.LegacyKey,
		[]byte(`{"uniqueSkill":"Master Crafter","startingItem":"Ancient Compass","bonusStat":"speed"}`)))

	s := newSession(t, store)
	assert.Equal(t, world.BaseSpeed+world.LegacySpeedBonus, s.State.Player.Speed)
}

func TestFirstFrameHasZeroDelta(t *testing.T) {
	s := newSession(t, nil)
	s.State.ClearItems()
	ctx := context.Background()
	_, err := s.KeyDown(ctx, "d")
	require.NoError(t, err)
	x0 := s.State.Player.X

	s.step(5 * time.Second)
	assert.Equal(t, x0, s.State.Player.X)

	s.step(time.Second / 60)
	assert.InDelta(t, x0+5, s.State.Player.X, 1e-9)

	s.KeyUp("d")
	s.step(time.Second / 60)
	assert.InDelta(t, x0+5, s.State.Player.X, 1e-9)
}

func TestSaveFailureBecomesNotice(t *testing.T) {
	s := newSession(t, nil)
	s.store.FailPut = errors.New("quota exceeded")

	_, err := s.Command(context.Background(), "/savelegacy")
	require.Error(t, err)
	assert.Empty(t, s.Notices(), "delivered on the next frame")

	s.step(time.Second / 60)
	require.Len(t, s.Notices(), 1)
	assert.Contains(t, s.Notices()[0], "Failed to save game legacy")
}

func TestSnapshotOverlays(t *testing.T) {
	s := newSession(t, nil)
	ctx := context.Background()

	_, err := s.Command(ctx, "collect wood 4")
	require.NoError(t, err)
	assert.Nil(t, s.Snapshot().Inventory)

	s.KeyDown(ctx, "i")
	s.KeyDown(ctx, "t")
	snap := s.Snapshot()
	assert.Contains(t, snap.Inventory, "Wood: 4")
	assert.Contains(t, snap.Inventory, "Wood Plank: 0")
	require.Len(t, snap.TeleportMenu, 3)
	assert.True(t, snap.TeleportMenu[0].Current)
}

func TestTransitionOverlayThroughFrames(t *testing.T) {
	s := newSession(t, nil)
	ctx := context.Background()
	s.step(0)

	reply, err := s.Command(ctx, "level 3")
	require.NoError(t, err)
	assert.Contains(t, reply, "3")

	alpha, text := s.Snapshot().OverlayAlpha, s.Snapshot().OverlayText
	assert.Zero(t, alpha)
	assert.Empty(t, text)

	for i := 0; i < 5; i++ {
		s.step(100 * time.Millisecond)
	}
	assert.InDelta(t, 0.5, s.Snapshot().OverlayAlpha, 1e-9)

	for i := 0; i < 5; i++ {
		s.step(100 * time.Millisecond)
	}
	snap := s.Snapshot()
	assert.Equal(t, 1.0, snap.OverlayAlpha)
	assert.Equal(t, "Sandy Dunes", snap.OverlayText)
	assert.Equal(t, "Sandy Dunes", snap.World)

	for i := 0; i < 25; i++ {
		s.step(100 * time.Millisecond)
	}
	assert.Zero(t, s.Snapshot().OverlayAlpha)
	assert.False(t, s.State.Transition.Active())
}

func TestResizeKeepsEverythingOnScreen(t *testing.T) {
	s := newSession(t, nil)
	s.State.Player.X, s.State.Player.Y = 1200, 650

	s.Resize(640, 360)
	snap := s.Snapshot()
	assert.LessOrEqual(t, snap.Player.X+snap.Player.W, 640.0)
	assert.LessOrEqual(t, snap.Player.Y+snap.Player.H, 360.0)
	for _, it := range append(snap.Orbs, snap.Memories...) {
		assert.True(t, it.Bounds.Visible(640, 360))
	}
	for _, tr := range snap.Trees {
		assert.True(t, tr.Bounds.Visible(640, 360))
	}
	assert.LessOrEqual(t, snap.Base.X+snap.Base.W, 640.0)
}

func TestStatusLine(t *testing.T) {
	s := newSession(t, nil)
	assert.Equal(t, "Wren | Grassy Plains | Lv 0 (0/100 XP) | Guild Lv 0 | Base Lv 0 | Memories 0/3", s.Status())
}

func TestDrainNotices(t *testing.T) {
	s := newSession(t, nil)
	_, err := s.Command(context.Background(), "xp 100")
	require.NoError(t, err)
	s.step(0)

	assert.Equal(t, []string{"Level up! You are now level 1."}, s.DrainNotices())
	assert.Empty(t, s.DrainNotices())
	assert.Len(t, s.Notices(), 1)
}

func TestConsoleLine(t *testing.T) {
	s := newSession(t, nil)
	ctx := context.Background()

	assert.Equal(t, []string{"Gained 30 XP."}, s.ConsoleLine(ctx, "xp 30"))
	assert.Nil(t, s.ConsoleLine(ctx, "toggleinventory"))
	out := s.ConsoleLine(ctx, "nope")
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "error: unknown command")
	assert.Greater(t, len(s.ConsoleLine(ctx, "help")), 10)
}
