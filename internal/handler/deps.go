package handler

import (
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/system"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// Deps holds what the command and input handlers act on. Handlers never
// assign game state directly except for the UI and intent flags; every other
// mutation goes through a system operation.
type Deps struct {
	World   *world.State
	Systems *system.Systems
	Worlds  *data.WorldTable
	Log     *zap.Logger
}
