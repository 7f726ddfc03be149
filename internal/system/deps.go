package system

import (
	"math"
	"math/rand"

	"github.com/gelopine/realm/internal/core/event"
	coresys "github.com/gelopine/realm/internal/core/system"
	"github.com/gelopine/realm/internal/data"
	"github.com/gelopine/realm/internal/scripting"
	"github.com/gelopine/realm/internal/world"
	"go.uber.org/zap"
)

// Deps holds the shared dependencies every game system is built from.
type Deps struct {
	World *world.State
	Data  *data.Tables
	Lua   *scripting.Engine
	Bus   *event.Bus
	Log   *zap.Logger
	Rand  *rand.Rand
	Clock coresys.WallClock // drives deferred ability effects
}

// randCoord returns a whole-pixel coordinate in [0, floor(limit)], or 0 when
// the viewport is smaller than the object.
func randCoord(r *rand.Rand, limit float64) float64 {
	n := int(math.Floor(limit))
	if n <= 0 {
		return 0
	}
	return float64(r.Intn(n + 1))
}
