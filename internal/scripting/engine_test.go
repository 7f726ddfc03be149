package scripting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuiltinFormulas(t *testing.T) {
	e, err := NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 150, e.NextXPThreshold(100))
	assert.Equal(t, 225, e.NextXPThreshold(150))
	assert.Equal(t, 337, e.NextXPThreshold(225))
	admin, err := e.AdminXPThreshold(5)
	require.NoError(t, err)
	assert.Equal(t, 350, admin)
	assert.Equal(t, 360, e.NextGuildThreshold(200))
	assert.Equal(t, 648, e.NextGuildThreshold(360))
	assert.Equal(t, 0.5, e.LevelUpSpeedBonus(2))
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuning.lua"), []byte(`
function next_xp_threshold(current)
    return current * 2
end
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 200, e.NextXPThreshold(100))
	assert.Equal(t, 360, e.NextGuildThreshold(200), "untouched formulas keep builtin definitions")
}

func TestBrokenOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`
function next_xp_threshold(current)
    error("boom")
end
function admin_xp_threshold(level)
    return "not a number"
end
function next_guild_threshold(current)
    return 0
end
`), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 150, e.NextXPThreshold(100))
	admin, err := e.AdminXPThreshold(1)
	require.NoError(t, err)
	assert.Equal(t, 150, admin)
	assert.Equal(t, 360, e.NextGuildThreshold(200))
}

func TestThresholdsStayInRange(t *testing.T) {
	e, err := NewEngine("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	_, err = e.AdminXPThreshold(200_000_000_000_000_000)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = e.AdminXPThreshold(math.MaxInt)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, math.MaxInt, e.NextXPThreshold(math.MaxInt))
	assert.Equal(t, math.MaxInt, e.NextXPThreshold(math.MaxInt/3*2+1))
	assert.Equal(t, math.MaxInt, e.NextGuildThreshold(math.MaxInt/2))
}

func TestNonFiniteOverrideSaturates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "huge.lua"), []byte(`
function next_xp_threshold(current)
    return math.huge
end
function admin_xp_threshold(level)
    return 0/0
end
function next_guild_threshold(current)
    return 1e300
end
`), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 150, e.NextXPThreshold(100), "infinity falls back to the builtin formula")
	admin, err := e.AdminXPThreshold(2)
	require.NoError(t, err, "NaN falls back to the builtin formula")
	assert.Equal(t, 200, admin)
	assert.Equal(t, math.MaxInt, e.NextGuildThreshold(200))
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestMissingOverrideDirIsFine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.NoError(t, err)
	e.Close()
}
