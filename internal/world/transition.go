package world

import "time"

// TransitionPhase is the state of the world change animation.
type TransitionPhase int

const (
	TransitionIdle TransitionPhase = iota
	TransitionFadingOut
	TransitionDisplayingText
	TransitionFadingIn
)

func (p TransitionPhase) String() string {
	switch p {
	case TransitionIdle:
		return "idle"
	case TransitionFadingOut:
		return "fadingOut"
	case TransitionDisplayingText:
		return "displayingText"
	case TransitionFadingIn:
		return "fadingIn"
	}
	return "unknown"
}

// Transition is the ephemeral world change state. The target world index is
// committed to State.CurrentWorld when the transition starts.
type Transition struct {
	Phase     TransitionPhase
	Elapsed   time.Duration
	WorldName string
}

func (t *Transition) Active() bool { return t.Phase != TransitionIdle }

// Start enters fadingOut towards the named world, restarting the timer.
func (t *Transition) Start(worldName string) {
	t.Phase = TransitionFadingOut
	t.Elapsed = 0
	t.WorldName = worldName
}

// Overlay returns the black overlay opacity in [0,1] and the caption shown
// over it.
func (t *Transition) Overlay() (alpha float64, text string) {
	switch t.Phase {
	case TransitionFadingOut:
		return ratio(t.Elapsed, FadeDuration), ""
	case TransitionDisplayingText:
		return 1, t.WorldName
	case TransitionFadingIn:
		return 1 - ratio(t.Elapsed, FadeDuration), t.WorldName
	}
	return 0, ""
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	r := float64(elapsed) / float64(total)
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
