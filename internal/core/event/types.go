package event

import "time"

// Game events. They are informational: every state change has already been
// applied by the time an event is emitted.

type PlayerLeveledUp struct {
	Level         int
	XPToNextLevel int
	Speed         float64
}

type GuildLeveledUp struct {
	Level         int
	XPToNextLevel int
}

type MemoryFound struct {
	ID        string
	Narrative string
	AllFound  bool
}

type AlignmentStarted struct {
	Name        string
	Description string
	Duration    time.Duration
}

type AlignmentEnded struct {
	Name string
}

type TransitionStarted struct {
	WorldIndex int
	WorldName  string
	Automatic  bool
}

type TransitionCompleted struct {
	WorldIndex int
	WorldName  string
}

type CraftQueued struct {
	Recipe      string
	Duration    time.Duration
	QueueLength int
}

type CraftCompleted struct {
	Recipe string
	Yields map[string]int
}

type TreeDepleted struct {
	X, Y float64
}

type TreeRespawned struct {
	X, Y float64
}

type AbilityUsed struct {
	Name   string
	Effect string
}

type BaseUpgraded struct {
	Level int
}

// Notice is a user-visible message that is not tied to a specific subsystem,
// such as a failed legacy save.
type Notice struct {
	Text string
}
