package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg struct {
	id uint64
}

// teaScheduler turns AfterFunc calls into Bubble Tea commands. The callback is
// kept here and run by Fire when the command's message reaches Update, so
// playback ticks share the event loop with key and mouse handling.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]func())}
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
}

// Fire runs the callback registered under id, at most once.
func (s *teaScheduler) Fire(id uint64) {
	fn, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	fn()
}

// Drain returns the commands for callbacks scheduled since the last call.
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) Pending() int { return len(s.pending) }
