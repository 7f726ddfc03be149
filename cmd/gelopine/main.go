package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gelopine/realm/internal/config"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/game"
	gonet "github.com/gelopine/realm/internal/net"
	"github.com/gelopine/realm/internal/persist"
	"github.com/gelopine/realm/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(player string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            Gelo-pine Realm  v0.1.0         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mPlayer:\033[0m %s\n\n", player)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/game.toml"
	if p := os.Getenv("GELOPINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.PlayerName)

	// 3. Catalogs and formulas
	printSection("Data")
	tables, err := data.LoadAll(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	printStat("Worlds", tables.Worlds.Count())
	printStat("Recipes", tables.Recipes.Count())
	printStat("Abilities", tables.Abilities.Count())
	printStat("Alignments", tables.Alignments.Count())
	printStat("Memories", tables.Memories.Count())
	printStat("Base levels", tables.BaseCosts.MaxLevel())

	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	printOK("Progression scripts loaded")
	fmt.Println()

	// 4. Legacy storage
	printSection("Storage")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	store, err := persist.Open(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()
	printOK(fmt.Sprintf("Legacy store ready (%s)", cfg.Storage.Driver))
	fmt.Println()

	// 5. Game session
	g := game.New(ctx, game.Options{
		PlayerName:   cfg.Game.PlayerName,
		Width:        cfg.Game.ViewportWidth,
		Height:       cfg.Game.ViewportHeight,
		Seed:         cfg.Game.Seed,
		StoreTimeout: cfg.Storage.Timeout,
		Tables:       tables,
		Lua:          lua,
		Store:        store,
		Log:          log,
	})

	// 6. Optional remote console
	var console *gonet.Console
	if cfg.Console.Bind != "" {
		srv, err := gonet.NewServer(cfg.Console.Bind, cfg.Console.InQueueSize, cfg.Console.OutQueueSize, cfg.Console.MaxLinesPerSec, log)
		if err != nil {
			return fmt.Errorf("console: %w", err)
		}
		go srv.AcceptLoop()
		console = gonet.NewConsole(srv, cfg.Console.MaxLinesPerTick, log)
		defer console.Close()
	}

	// 7. Local commands are read on their own goroutine and applied
	// between frames.
	lines := make(chan string)
	go readLines(os.Stdin, lines)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.FrameInterval)
	defer ticker.Stop()

	var statusC <-chan time.Time
	if cfg.Game.StatusInterval > 0 {
		status := time.NewTicker(cfg.Game.StatusInterval)
		defer status.Stop()
		statusC = status.C
	}

	printSection("Ready")
	printReady(fmt.Sprintf("Frame loop started (interval: %s)", cfg.Game.FrameInterval))
	if console != nil {
		printReady(fmt.Sprintf("Console listening on %s", cfg.Console.Bind))
	}
	printReady("Type /help for commands")
	fmt.Println()

	start := time.Now()
	bg := context.Background()
	consoleLine := func(line string) []string { return g.ConsoleLine(bg, line) }
	for {
		select {
		case <-ticker.C:
			if console != nil {
				console.Pump(consoleLine)
			}
			g.Frame(time.Since(start))
			for _, n := range g.DrainNotices() {
				fmt.Printf("  \033[35m★\033[0m %s\n", n)
				if console != nil {
					console.Broadcast(n)
				}
			}
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			reply, err := g.Command(bg, line)
			switch {
			case err != nil:
				fmt.Printf("  \033[31m✗\033[0m %v\n", err)
			case reply != "":
				fmt.Println(reply)
			}
		case <-statusC:
			fmt.Println(g.Status())
			st := g.Stats()
			log.Debug("session stats",
				zap.Int("pending_events", st.PendingEvents),
				zap.Int("pending_effects", st.PendingEffects),
				zap.Int("entities", st.Entities))
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func readLines(f *os.File, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out <- line
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
