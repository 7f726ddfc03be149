package scripting

import (
	"embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts/*.lua
var builtin embed.FS

// Engine wraps a single gopher-lua VM holding the progression formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine loads the built-in formulas, then every .lua file in overrideDir
// (if non-empty). Later definitions replace earlier globals, so an override
// script only needs the functions it changes.
func NewEngine(overrideDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	entries, err := builtin.ReadDir("scripts")
	if err != nil {
		vm.Close()
		return nil, err
	}
	for _, entry := range entries {
		src, err := builtin.ReadFile("scripts/" + entry.Name())
		if err != nil {
			vm.Close()
			return nil, err
		}
		if err := vm.DoString(string(src)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load builtin %s: %w", entry.Name(), err)
		}
	}

	if overrideDir != "" {
		if err := e.loadDir(overrideDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. A missing directory is not an error.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// --- Progression Bridge ---

// ErrOutOfRange is returned when a formula result does not fit in an int.
var ErrOutOfRange = errors.New("formula result out of range")

// NextXPThreshold returns the player threshold following current. Results
// too large for an int saturate at math.MaxInt.
func (e *Engine) NextXPThreshold(current int) int {
	if v, ok := e.callNumber("next_xp_threshold", float64(current)); ok && validThreshold(v) {
		return saturate(v)
	}
	return saturate(math.Floor(float64(current) * 1.5))
}

// AdminXPThreshold returns the threshold installed when a level is set
// directly, or ErrOutOfRange when it would not fit in an int.
func (e *Engine) AdminXPThreshold(level int) (int, error) {
	if v, ok := e.callNumber("admin_xp_threshold", float64(level)); ok && validThreshold(v) {
		if v >= maxIntFloat {
			return 0, fmt.Errorf("admin_xp_threshold(%d) = %g: %w", level, v, ErrOutOfRange)
		}
		return int(v), nil
	}
	if level > (math.MaxInt-100)/50 {
		return 0, fmt.Errorf("admin threshold for level %d: %w", level, ErrOutOfRange)
	}
	return 100 + 50*level, nil
}

// NextGuildThreshold returns the guild threshold following current. Results
// too large for an int saturate at math.MaxInt.
func (e *Engine) NextGuildThreshold(current int) int {
	if v, ok := e.callNumber("next_guild_threshold", float64(current)); ok && validThreshold(v) {
		return saturate(v)
	}
	return saturate(math.Floor(float64(current) * 1.8))
}

// maxIntFloat is 2^63 on 64-bit platforms: the smallest float64 that no
// longer converts to an int.
const maxIntFloat = float64(math.MaxInt)

// validThreshold rejects NaN, infinities and values below 1.
func validThreshold(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 1
}

func saturate(v float64) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v >= maxIntFloat {
		return math.MaxInt
	}
	return int(v)
}

// LevelUpSpeedBonus returns the base speed added on reaching newLevel.
func (e *Engine) LevelUpSpeedBonus(newLevel int) float64 {
	if v, ok := e.callNumber("level_up_speed_bonus", float64(newLevel)); ok && v >= 0 {
		return v
	}
	return 0.5
}

// callNumber calls a Lua function with numeric args and returns its numeric
// result. ok is false when the function is missing, fails, or returns a
// non-number; callers then fall back to the compiled-in formula.
func (e *Engine) callNumber(name string, args ...float64) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0, false
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
