package handler

import (
	"context"
	"regexp"
	"strings"

	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// Key names follow the DOM KeyboardEvent.key values.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
)

var commandChar = regexp.MustCompile(`^[a-zA-Z0-9\s!_]$`)

// Input turns key and pointer events into intents, overlay toggles, command
// line edits and teleport menu selections.
type Input struct {
	d *Deps
}

func NewInput(d *Deps) *Input { return &Input{d: d} }

// KeyDown handles a key press. When Enter submits the command line, the
// command's reply and error are returned.
func (in *Input) KeyDown(ctx context.Context, key string) (string, error) {
	ui := &in.d.World.UI
	if ui.CommandMode {
		return in.commandKey(ctx, key)
	}

	if in.setIntent(key, true) {
		return "", nil
	}
	switch strings.ToLower(key) {
	case "/":
		ui.CommandMode = true
		ui.CommandBuffer = "/"
	case "i":
		ui.ShowInventory = !ui.ShowInventory
	case "t":
		ui.ShowTeleport = !ui.ShowTeleport
	case "e":
		n := in.d.Systems.Harvest.InteractNearby()
		in.d.Log.Debug("interact", zap.Int("trees", n))
	}
	return "", nil
}

// KeyUp releases a held movement key. It applies in every mode so no intent
// stays stuck after the command line closes.
func (in *Input) KeyUp(key string) {
	in.setIntent(key, false)
}

func (in *Input) setIntent(key string, down bool) bool {
	it := &in.d.World.Intents
	switch strings.ToLower(key) {
	case "w", "arrowup":
		it.Up = down
	case "s", "arrowdown":
		it.Down = down
	case "a", "arrowleft":
		it.Left = down
	case "d", "arrowright":
		it.Right = down
	default:
		return false
	}
	return true
}

func (in *Input) commandKey(ctx context.Context, key string) (string, error) {
	ui := &in.d.World.UI
	switch key {
	case KeyEnter:
		line := ui.CommandBuffer
		ui.CommandBuffer = ""
		ui.CommandMode = false
		if strings.TrimPrefix(line, "/") == "" {
			return "", nil
		}
		return HandleCommand(ctx, line, in.d)
	case KeyEscape:
		ui.CommandBuffer = ""
		ui.CommandMode = false
	case KeyBackspace:
		if n := len(ui.CommandBuffer); n > 0 {
			ui.CommandBuffer = ui.CommandBuffer[:n-1]
		}
	default:
		if commandChar.MatchString(key) && len(ui.CommandBuffer) < world.CommandMaxLength {
			ui.CommandBuffer += key
		}
	}
	return "", nil
}

// Click resolves a pointer click against the teleport overlay. It reports
// whether a world transition started.
func (in *Input) Click(x, y float64) (bool, error) {
	ui := &in.d.World.UI
	if !ui.ShowTeleport {
		return false, nil
	}
	for _, opt := range MenuOptions(in.d.World, in.d.Worlds) {
		if !opt.Rect.Contains(x, y) {
			continue
		}
		if !opt.Eligible {
			in.d.Log.Info("world locked", zap.String("world", opt.Name), zap.Int("min_level", opt.MinLevel))
			return false, nil
		}
		started, err := in.d.Systems.Transition.Teleport(opt.Index)
		ui.ShowTeleport = false
		return started, err
	}
	return false, nil
}
