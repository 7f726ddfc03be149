package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each frame.
// Systems sharing a phase run in registration order.
type Runner struct {
	systems []System
	sorted  bool

	gate     Gate
	gateFrom Phase
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// SetGate installs a suspension gate: while g.Suspended() is true, systems
// in phase `from` or later are skipped for the rest of the frame.
func (r *Runner) SetGate(from Phase, g Gate) {
	r.gate = g
	r.gateFrom = from
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if r.gate != nil && s.Phase() >= r.gateFrom && r.gate.Suspended() {
			return
		}
		s.Update(dt)
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
