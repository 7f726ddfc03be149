package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/persist"
	"github.com/gelopine/realm/internal/scripting"
	"github.com/gelopine/realm/internal/world"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	*Systems
	world  *world.State
	clock  *fakeClock
	bus    *event.Bus
	store  *persist.MemoryStore
	runner *coresys.Runner
	frames *coresys.FrameClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	tables := data.MustLoadEmbedded()
	lua, err := scripting.NewEngine("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(lua.Close)

	h := &harness{
		world:  world.NewState(tables, "Pip", 1280, 720),
		clock:  &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		bus:    event.NewBus(),
		store:  persist.NewMemoryStore(),
		runner: coresys.NewRunner(),
		frames: &coresys.FrameClock{},
	}
	d := Deps{
		World: h.world,
		Data:  tables,
		Lua:   lua,
		Bus:   h.bus,
		Log:   zap.NewNop(),
		Rand:  rand.New(rand.NewSource(7)),
		Clock: h.clock,
	}
	h.Systems = New(d, h.store, h.frames, time.Second)
	h.Systems.Register(h.runner)
	return h
}

// tick advances both the wall clock and the frame systems by dt.
func (h *harness) tick(dt time.Duration) {
	h.clock.Advance(dt)
	h.runner.Tick(dt)
}

// collect subscribes to T and returns a function that flushes the bus and
// reports everything received so far.
func collect[T any](h *harness) func() []T {
	var got []T
	event.Subscribe(h.bus, func(ev T) { got = append(got, ev) })
	return func() []T {
		h.bus.SwapBuffers()
		h.bus.DispatchAll()
		return got
	}
}
