// catalogcheck loads a catalog directory and an optional script directory
// the way the game does and reports what it found, so edited YAML and Lua
// overrides can be checked before starting a session.
package main

import (
	"fmt"
	"os"

	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/scripting"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "Usage: catalogcheck <catalog dir | -> [script dir]")
		os.Exit(1)
	}
	dir := os.Args[1]
	if dir == "-" {
		dir = ""
	}

	tables, err := data.LoadAll(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("worlds:      %d\n", tables.Worlds.Count())
	for _, w := range tables.Worlds.All() {
		fmt.Printf("  [%d] %s (level %d)\n", w.Index, w.Name, w.MinPlayerLevel)
	}
	fmt.Printf("recipes:     %d\n", tables.Recipes.Count())
	fmt.Printf("abilities:   %d\n", tables.Abilities.Count())
	fmt.Printf("alignments:  %d (every %s)\n", tables.Alignments.Count(), tables.Alignments.CheckInterval)
	fmt.Printf("memories:    %d\n", tables.Memories.Count())
	fmt.Printf("base levels: %d\n", tables.BaseCosts.MaxLevel())

	scriptDir := ""
	if len(os.Args) == 3 {
		scriptDir = os.Args[2]
	}
	lua, err := scripting.NewEngine(scriptDir, zap.NewNop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lua.Close()

	// First few thresholds, to eyeball a formula override.
	xp, guild := 100, 200
	for lvl := 1; lvl <= 5; lvl++ {
		xp = lua.NextXPThreshold(xp)
		guild = lua.NextGuildThreshold(guild)
		admin, err := lua.AdminXPThreshold(lvl)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("level %d: xp %d, guild %d, speed +%.1f, admin %d\n",
			lvl, xp, guild, lua.LevelUpSpeedBonus(lvl), admin)
	}
}
