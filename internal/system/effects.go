package system

import (
	"sort"
	"time"

	coresys "github.com/gelopine/realm/internal/core/system"
)

type effectTask struct {
	name  string
	due   time.Time
	every time.Duration // 0 = one-shot
	run   func() bool   // repeating tasks return false to stop
	seq   uint64
}

// EffectQueue runs deferred ability effects on wall-clock time instead of
// frame deltas. It drains at the start of every frame, before any other
// system, in due order (ties in scheduling order). It is not gated by world
// transitions and New-Game+ does not clear it.
type EffectQueue struct {
	clock coresys.WallClock
	tasks []*effectTask
	seq   uint64
}

func NewEffectQueue(clock coresys.WallClock) *EffectQueue {
	return &EffectQueue{clock: clock}
}

func (q *EffectQueue) Phase() coresys.Phase { return coresys.PhaseDeferred }

// After runs fn once, d from now.
func (q *EffectQueue) After(d time.Duration, name string, fn func()) {
	q.push(&effectTask{name: name, due: q.clock.Now().Add(d), run: func() bool { fn(); return false }})
}

// Every runs fn each interval until it returns false.
func (q *EffectQueue) Every(interval time.Duration, name string, fn func() bool) {
	q.push(&effectTask{name: name, due: q.clock.Now().Add(interval), every: interval, run: fn})
}

func (q *EffectQueue) push(t *effectTask) {
	q.seq++
	t.seq = q.seq
	q.tasks = append(q.tasks, t)
}

// Pending returns the number of scheduled tasks.
func (q *EffectQueue) Pending() int { return len(q.tasks) }

// Update runs every task due by now. A repeating task that fell behind runs
// once per missed interval.
func (q *EffectQueue) Update(_ time.Duration) {
	now := q.clock.Now()
	for {
		t := q.next(now)
		if t == nil {
			return
		}
		if t.run() && t.every > 0 {
			t.due = t.due.Add(t.every)
			continue
		}
		q.remove(t)
	}
}

func (q *EffectQueue) next(now time.Time) *effectTask {
	if len(q.tasks) == 0 {
		return nil
	}
	sort.SliceStable(q.tasks, func(i, j int) bool {
		a, b := q.tasks[i], q.tasks[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	if q.tasks[0].due.After(now) {
		return nil
	}
	return q.tasks[0]
}

func (q *EffectQueue) remove(t *effectTask) {
	for i, x := range q.tasks {
		if x == t {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}
