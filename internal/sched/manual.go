package sched

import (
	"sort"
	"time"
)

type entry struct {
	due time.Duration
	seq uint64
	fn  func()
}

// Manual is a scheduler on a virtual clock. Nothing runs until the owner calls
// Step, Advance or RunUntilIdle. Callbacks due at the same instant run in the
// order they were scheduled.
type Manual struct {
	now   time.Duration
	seq   uint64
	queue []entry
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	e := entry{due: m.now + d, seq: m.seq, fn: fn}
	i := sort.Search(len(m.queue), func(i int) bool {
		q := m.queue[i]
		return q.due > e.due || (q.due == e.due && q.seq > e.seq)
	})
	m.queue = append(m.queue, entry{})
	copy(m.queue[i+1:], m.queue[i:])
	m.queue[i] = e
}

// Step runs the earliest pending callback, moving the clock to its due time.
// It reports false when nothing is pending.
func (m *Manual) Step() bool {
	if len(m.queue) == 0 {
		return false
	}
	e := m.queue[0]
	m.queue = m.queue[1:]
	if e.due > m.now {
		m.now = e.due
	}
	e.fn()
	return true
}

// Advance runs every callback due within d of the current time, including
// callbacks scheduled by those callbacks, and returns how many ran.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	n := 0
	for len(m.queue) > 0 && m.queue[0].due <= target {
		m.Step()
		n++
	}
	m.now = target
	return n
}

// RunUntilIdle steps until the queue drains or limit callbacks have run.
// A limit of zero or less means no limit.
func (m *Manual) RunUntilIdle(limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		if !m.Step() {
			break
		}
		n++
	}
	return n
}

func (m *Manual) Pending() int       { return len(m.queue) }
func (m *Manual) Now() time.Duration { return m.now }
