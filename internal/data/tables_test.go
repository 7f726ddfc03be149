package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	tb, err := LoadAll("")
	require.NoError(t, err)

	require.Equal(t, 3, tb.Worlds.Count())
	assert.Equal(t, "Grassy Plains", tb.Worlds.Get(0).Name)
	assert.Equal(t, 6, tb.Worlds.Get(2).MinPlayerLevel)
	assert.Nil(t, tb.Worlds.Get(3))
	assert.Nil(t, tb.Worlds.Get(-1))

	plank := tb.Recipes.Get("wood_plank")
	require.NotNil(t, plank)
	assert.Equal(t, time.Second, plank.Time)
	assert.Equal(t, []ItemAmount{{Item: "wood", Count: 10}}, plank.Materials)
	assert.Equal(t, []string{"basic_tool", "wood_plank"}, tb.Recipes.Names())

	assert.True(t, tb.Resources.IsResource("wood"))
	assert.False(t, tb.Resources.IsResource("wood_plank"))
	assert.Len(t, tb.Resources.StartingInventory(), 5)

	wind := tb.Abilities.Get("Wind Gust")
	require.NotNil(t, wind)
	assert.Equal(t, EffectSpeedBoost, wind.Effect.Kind)
	assert.Equal(t, 5*time.Second, wind.Cooldown)
	heal := tb.Abilities.Get("Healing Bloom")
	require.NotNil(t, heal)
	assert.Equal(t, 500*time.Millisecond, heal.Effect.Interval)
	assert.Equal(t, 50, heal.Effect.Budget)
	assert.Equal(t, EffectNone, tb.Abilities.Get("Stone Wall").Effect.Kind)

	assert.Equal(t, 30*time.Second, tb.Alignments.CheckInterval)
	require.Equal(t, 2, tb.Alignments.Count())
	lunar := tb.Alignments.All()[0]
	assert.Equal(t, 1.5, lunar.SpawnRateMultiplier)
	assert.Equal(t, 1.0, lunar.SpeedMultiplier)

	assert.Equal(t, 3, tb.Memories.Count())
	assert.NotNil(t, tb.Memories.Get("memory_002"))

	assert.Equal(t, 3, tb.BaseCosts.MaxLevel())
	assert.Equal(t, 500, tb.BaseCosts.ForTarget(1).XP)
	assert.Nil(t, tb.BaseCosts.ForTarget(4))
}

func TestLoadAllFromDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"worlds.yaml", "recipes.yaml", "resources.yaml", "abilities.yaml", "alignments.yaml", "memories.yaml", "base_costs.yaml"} {
		raw, err := embedded.ReadFile("yaml/" + name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memories.yaml"), []byte(`
memories:
  - id: only
    size: 10
    narrative: just one
`), 0o644))

	tb, err := LoadAll(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, tb.Memories.Count())
}

func TestLoadAllMissingFile(t *testing.T) {
	_, err := LoadAll(t.TempDir())
	assert.ErrorContains(t, err, "worlds.yaml")
}

func TestParseWorldTableRejectsUnorderedLevels(t *testing.T) {
	_, err := ParseWorldTable([]byte(`
worlds:
  - { name: A, min_player_level: 3, background: [a, b, c] }
  - { name: B, min_player_level: 1, background: [a, b, c] }
`))
	assert.Error(t, err)
}

func TestParseBaseCostTableRequiresContiguousLevels(t *testing.T) {
	_, err := ParseBaseCostTable([]byte(`
base_costs:
  - { level: 1, xp: 10 }
  - { level: 3, xp: 30 }
`))
	assert.ErrorContains(t, err, "missing level 2")

	_, err = ParseBaseCostTable([]byte(`
base_costs:
  - { level: 1, xp: 10 }
  - { level: 1, xp: 30 }
`))
	assert.ErrorContains(t, err, "twice")
}

func TestParseRecipeTableRejectsBadAmounts(t *testing.T) {
	_, err := ParseRecipeTable([]byte(`
recipes:
  - name: bad
    time_ms: 100
    materials:
      - { item: wood, count: 0 }
    yields:
      - { item: plank, count: 1 }
`))
	assert.Error(t, err)
}

func TestParseAbilityTableValidatesEffects(t *testing.T) {
	_, err := ParseAbilityTable([]byte(`
abilities:
  - name: Broken
    cooldown_ms: 100
    effect: { kind: speed_boost, multiplier: 2 }
`))
	assert.ErrorContains(t, err, "Broken")

	_, err = ParseAbilityTable([]byte(`
abilities:
  - name: Weird
    effect: { kind: teleport }
`))
	assert.ErrorContains(t, err, "unknown effect kind")
}

func TestParseAlignmentTableNeedsInterval(t *testing.T) {
	_, err := ParseAlignmentTable([]byte(`
alignments:
  - { name: X, duration_ms: 10 }
`))
	assert.Error(t, err)
}
