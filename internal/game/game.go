// Package game assembles the world state, systems, event bus and input
// handlers into one frame-driven game session.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/handler"
	"github.com/gelopine/realm/internal/persist"
	"github.com/gelopine/realm/internal/scripting"
	"github.com/gelopine/realm/internal/system"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

const maxNotices = 5

// Options configures a new game session.
type Options struct {
	PlayerName    string
	Width, Height float64
	Seed          int64 // 0 = seed from the clock
	StoreTimeout  time.Duration

	Tables *data.Tables
	Lua    *scripting.Engine
	Store  persist.KVStore
	Clock  coresys.WallClock // nil = real time
	Log    *zap.Logger
}

// Game is one running playthrough. All methods must be called from the
// goroutine driving Frame.
type Game struct {
	State   *world.State
	Systems *system.Systems

	tables *data.Tables
	bus    *event.Bus
	runner *coresys.Runner
	frames *coresys.FrameClock
	deps   *handler.Deps
	input  *handler.Input
	log    *zap.Logger

	notices []string
	unread  []string
}

// New builds the session, applies any stored legacy and populates the first
// world.
func New(ctx context.Context, opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = coresys.RealClock{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		State:  world.NewState(opts.Tables, opts.PlayerName, opts.Width, opts.Height),
		tables: opts.Tables,
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
		frames: &coresys.FrameClock{},
		log:    log,
	}
	g.Systems = system.New(system.Deps{
		World: g.State,
		Data:  opts.Tables,
		Lua:   opts.Lua,
		Bus:   g.bus,
		Log:   log,
		Rand:  rand.New(rand.NewSource(seed)),
		Clock: clock,
	}, opts.Store, g.frames, opts.StoreTimeout)
	g.Systems.Register(g.runner)

	g.deps = &handler.Deps{World: g.State, Systems: g.Systems, Worlds: opts.Tables.Worlds, Log: log}
	g.input = handler.NewInput(g.deps)
	g.subscribe()

	if rec := g.Systems.Legacy.Load(ctx); rec != nil {
		log.Info("legacy loaded", zap.String("skill", rec.UniqueSkill), zap.String("item", rec.StartingItem))
	}
	g.Systems.Collectibles.SpawnInitial()
	g.Systems.Harvest.SpawnAll()

	log.Info("game ready",
		zap.String("player", g.State.Player.Name),
		zap.String("world", g.WorldName()),
		zap.Int("systems", g.runner.Len()))
	return g
}

func (g *Game) subscribe() {
	event.Subscribe(g.bus, func(ev event.Notice) {
		g.log.Warn("notice", zap.String("text", ev.Text))
		g.pushNotice(ev.Text)
	})
	event.Subscribe(g.bus, func(ev event.PlayerLeveledUp) {
		g.pushNotice(fmt.Sprintf("Level up! You are now level %d.", ev.Level))
	})
	event.Subscribe(g.bus, func(ev event.MemoryFound) {
		if ev.AllFound {
			g.pushNotice("Every memory has been recovered.")
		}
	})
	event.Subscribe(g.bus, func(ev event.CraftCompleted) {
		g.pushNotice(fmt.Sprintf("Crafted %s.", ev.Recipe))
	})
	event.Subscribe(g.bus, func(ev event.AlignmentStarted) {
		g.pushNotice(fmt.Sprintf("%s: %s", ev.Name, ev.Description))
	})
	event.Subscribe(g.bus, func(ev event.AlignmentEnded) {
		g.pushNotice(ev.Name + " has ended.")
	})
}

func (g *Game) pushNotice(text string) {
	g.notices = append(g.notices, text)
	g.unread = append(g.unread, text)
	if len(g.notices) > maxNotices {
		g.notices = g.notices[len(g.notices)-maxNotices:]
	}
}

// Frame runs one frame at timestamp ts. Events emitted last frame are
// delivered first; the first frame and any frame after a New-Game+ see a zero
// delta.
func (g *Game) Frame(ts time.Duration) {
	g.bus.SwapBuffers()
	g.bus.DispatchAll()
	dt := g.frames.Advance(ts)
	g.runner.Tick(dt)
}

// Resize adapts the session to a new viewport.
func (g *Game) Resize(w, h float64) {
	g.State.Resize(w, h)
	g.log.Debug("viewport resized", zap.Float64("width", w), zap.Float64("height", h))
}

// Command runs one command line.
func (g *Game) Command(ctx context.Context, line string) (string, error) {
	return handler.HandleCommand(ctx, line, g.deps)
}

func (g *Game) KeyDown(ctx context.Context, key string) (string, error) {
	return g.input.KeyDown(ctx, key)
}

func (g *Game) KeyUp(key string) { g.input.KeyUp(key) }

// Click forwards a pointer click; it reports whether a teleport started.
func (g *Game) Click(x, y float64) (bool, error) { return g.input.Click(x, y) }

// WorldName is the name of the current world.
func (g *Game) WorldName() string {
	if w := g.tables.Worlds.Get(g.State.CurrentWorld); w != nil {
		return w.Name
	}
	return ""
}

// Notices returns the most recent user-visible notices, oldest first.
func (g *Game) Notices() []string { return append([]string(nil), g.notices...) }

// DrainNotices returns the notices raised since the previous call.
func (g *Game) DrainNotices() []string {
	out := g.unread
	g.unread = nil
	return out
}

// Stats counts the work queued inside the session.
type Stats struct {
	PendingEvents  int // emitted this frame, delivered next frame
	PendingEffects int
	Entities       int
}

func (g *Game) Stats() Stats {
	return Stats{
		PendingEvents:  g.bus.Pending(),
		PendingEffects: g.Systems.Effects.Pending(),
		Entities:       g.State.Entities.Live(),
	}
}

// ConsoleLine runs a line received from a remote console and formats the
// outcome as reply lines.
func (g *Game) ConsoleLine(ctx context.Context, line string) []string {
	reply, err := g.Command(ctx, line)
	if err != nil {
		return []string{"error: " + err.Error()}
	}
	if reply == "" {
		return nil
	}
	return strings.Split(reply, "\n")
}
