package handler

import (
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/world"
)

// MenuOption is one row of the teleport overlay.
type MenuOption struct {
	Index    int
	Name     string
	MinLevel int
	Rect     world.Rect
	Eligible bool // reachable at the player's level, or the current world
	Current  bool
}

// Label is the row text as drawn, with a lock or current-world mark.
func (o MenuOption) Label() string {
	switch {
	case o.Current:
		return o.Name + " (Current)"
	case !o.Eligible:
		return o.Name + " (Locked)"
	}
	return o.Name
}

// MenuOptions lays out the teleport overlay for the current viewport: a
// centred box MenuWidth wide with a header followed by one row per world.
func MenuOptions(s *world.State, worlds *data.WorldTable) []MenuOption {
	all := worlds.All()
	menuX := s.Width/2 - world.MenuWidth/2
	menuH := float64(len(all))*world.MenuOptionHeight + world.MenuHeaderHeight
	menuY := s.Height/2 - menuH/2

	opts := make([]MenuOption, len(all))
	for i, w := range all {
		current := i == s.CurrentWorld
		opts[i] = MenuOption{
			Index:    i,
			Name:     w.Name,
			MinLevel: w.MinPlayerLevel,
			Rect: world.Rect{
				X: menuX,
				Y: menuY + world.MenuHeaderHeight + float64(i)*world.MenuOptionHeight,
				W: world.MenuWidth,
				H: world.MenuOptionHeight,
			},
			Eligible: current || s.Player.Level >= w.MinPlayerLevel,
			Current:  current,
		}
	}
	return opts
}
