package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversNextFrame(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev PlayerLeveledUp) { got = append(got, ev.Level) })

	Emit(b, PlayerLeveledUp{Level: 1})
	Emit(b, PlayerLeveledUp{Level: 2})
	assert.Equal(t, 2, b.Pending())

	b.DispatchAll()
	assert.Empty(t, got, "events are not visible before the swap")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got, "dispatched events are not replayed")
}

func TestBusDispatchOrderFollowsFirstEmission(t *testing.T) {
	b := NewBus()
	var seq []string
	Subscribe(b, func(Notice) { seq = append(seq, "notice") })
	Subscribe(b, func(MemoryFound) { seq = append(seq, "memory") })

	Emit(b, MemoryFound{ID: "memory_001"})
	Emit(b, Notice{Text: "hi"})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, []string{"memory", "notice"}, seq)
}
