package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recSystem) Phase() Phase { return s.phase }
func (s *recSystem) Update(time.Duration) {
	*s.log = append(*s.log, s.name)
}

type boolGate struct{ on bool }

func (g *boolGate) Suspended() bool { return g.on }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recSystem{"post", PhasePostUpdate, &log})
	r.Register(&recSystem{"update-a", PhaseUpdate, &log})
	r.Register(&recSystem{"deferred", PhaseDeferred, &log})
	r.Register(&recSystem{"update-b", PhaseUpdate, &log})

	r.Tick(16 * time.Millisecond)

	assert.Equal(t, []string{"deferred", "update-a", "update-b", "post"}, log)
	assert.Equal(t, 4, r.Len())
}

func TestRunnerGateSkipsLaterPhases(t *testing.T) {
	var log []string
	gate := &boolGate{on: true}
	r := NewRunner()
	r.Register(&recSystem{"deferred", PhaseDeferred, &log})
	r.Register(&recSystem{"transition", PhaseTransition, &log})
	r.Register(&recSystem{"update", PhaseUpdate, &log})
	r.SetGate(PhaseUpdate, gate)

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"deferred", "transition"}, log)

	log = nil
	gate.on = false
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"deferred", "transition", "update"}, log)
}

func TestFrameClock(t *testing.T) {
	var c FrameClock
	assert.Equal(t, time.Duration(0), c.Advance(5*time.Second))
	assert.Equal(t, 16*time.Millisecond, c.Advance(5*time.Second+16*time.Millisecond))
	assert.Equal(t, time.Duration(0), c.Advance(time.Second), "backwards timestamp must not go negative")
	assert.Equal(t, 10*time.Millisecond, c.Advance(time.Second+10*time.Millisecond))

	c.Reset()
	assert.Equal(t, time.Duration(0), c.Advance(time.Hour))
}
