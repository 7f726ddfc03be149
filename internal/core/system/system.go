package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseDeferred   Phase = iota // 0: wall-clock effect queue, never gated
	PhaseSchedule                // 1: cosmic alignment scheduler
	PhaseTransition              // 2: world transition; suspends the phases below while active
	PhaseUpdate                  // 3: message timers, movement, collision
	PhasePostUpdate              // 4: spawning, animation, crafting, cooldowns, respawn
)

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Gate reports whether the gated phases must be skipped for the current frame.
// It is consulted after the phase that owns it has run.
type Gate interface {
	Suspended() bool
}
