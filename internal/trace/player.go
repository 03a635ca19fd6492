package trace

import (
	"log/slog"
	"time"

	"github.com/san-kum/pathviz/internal/logging"
)

const (
	// MaxSpeed is the fastest speed setting; it maps to a 1ms interval.
	MaxSpeed = 100

	// DefaultSpeed maps to a 20ms interval.
	DefaultSpeed = 81
)

// IntervalForSpeed maps a speed setting to a tick interval. Higher speeds give
// shorter intervals; the result is never below one millisecond.
func IntervalForSpeed(speed int) time.Duration {
	ms := MaxSpeed + 1 - speed
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Scheduler runs fn once after d on the caller's cooperative thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Renderer draws the revealed state. The state is owned by the player and is
// only valid for the duration of the call.
type Renderer interface {
	Render(st *State)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(st *State)

func (f RendererFunc) Render(st *State) { f(st) }

// Hooks observe a player's lifecycle. Nil fields are skipped.
type Hooks struct {
	OnPlay   func(t Trace, interval time.Duration)
	OnTick   func(st *State)
	OnCancel func(st *State)
	OnDone   func(st *State, ticks int)
}

type Option func(*Player)

func WithLogger(l *slog.Logger) Option {
	return func(p *Player) { p.logger = l }
}

func WithRenderer(r Renderer) Option {
	return func(p *Player) { p.renderer = r }
}

// WithHooks registers lifecycle hooks. It may be given more than once.
func WithHooks(h Hooks) Option {
	return func(p *Player) { p.hooks = append(p.hooks, h) }
}

// Player replays one trace at a time.
type Player struct {
	sched    Scheduler
	renderer Renderer
	hooks    []Hooks
	logger   *slog.Logger

	gen      uint64
	trace    Trace
	interval time.Duration
	state    State
	ticks    int
}

func NewPlayer(s Scheduler, opts ...Option) *Player {
	p := &Player{
		sched:  s,
		logger: logging.NewNop(),
		state:  newState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play starts replaying t at the interval implied by speed. A playback already
// in progress is cancelled first.
func (p *Player) Play(t Trace, speed int) error {
	return p.PlayEvery(t, IntervalForSpeed(speed))
}

// PlayEvery starts replaying t with an explicit tick interval.
func (p *Player) PlayEvery(t Trace, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	if p.sched == nil {
		return ErrNoScheduler
	}
	if p.state.Phase == Playing {
		p.Cancel()
	}

	p.gen++
	gen := p.gen
	p.trace = t.Clone()
	p.interval = interval
	p.state = newState()
	p.state.Phase = Playing
	p.ticks = 0

	p.logger.Info("playback started",
		"visited", len(t.Visited),
		"frontier", len(t.Frontier),
		"path", len(t.Path),
		"interval", interval)
	for _, h := range p.hooks {
		if h.OnPlay != nil {
			h.OnPlay(t, interval)
		}
	}

	p.render()
	if gen != p.gen {
		return nil
	}
	p.sched.AfterFunc(0, func() { p.tick(gen) })
	return nil
}

// Cancel stops the current playback and clears everything revealed so far.
// Ticks already scheduled become no-ops. Cancel is valid in any phase and
// always leaves the player Idle.
func (p *Player) Cancel() {
	wasPlaying := p.state.Phase == Playing
	p.gen++

	if wasPlaying {
		p.logger.Debug("playback cancelled",
			"visited", p.state.VisitedCursor,
			"frontier", p.state.FrontierCursor,
			"path", p.state.PathCursor)
		for _, h := range p.hooks {
			if h.OnCancel != nil {
				h.OnCancel(&p.state)
			}
		}
	}

	p.trace = Trace{}
	p.state = newState()
	p.ticks = 0
}

func (p *Player) tick(gen uint64) {
	if gen != p.gen || p.state.Phase != Playing {
		return
	}
	p.ticks++

	st := &p.state
	advanced := false

	if st.VisitedCursor < len(p.trace.Visited) {
		st.Visited.Add(p.trace.Visited[st.VisitedCursor])
		st.VisitedCursor++
		advanced = true
	}
	if st.FrontierCursor < len(p.trace.Frontier) {
		st.Frontier.Add(p.trace.Frontier[st.FrontierCursor])
		st.FrontierCursor++
		advanced = true
	}
	if st.VisitedCursor >= len(p.trace.Visited) &&
		st.FrontierCursor >= len(p.trace.Frontier) &&
		st.PathCursor < len(p.trace.Path) {
		st.Path = append(st.Path, p.trace.Path[st.PathCursor])
		st.PathCursor++
		advanced = true
	}

	if !advanced {
		st.Phase = Done
		p.logger.Info("playback finished", "ticks", p.ticks, "path", len(st.Path))
		for _, h := range p.hooks {
			if h.OnDone != nil {
				h.OnDone(st, p.ticks)
			}
		}
		return
	}

	for _, h := range p.hooks {
		if h.OnTick != nil {
			h.OnTick(st)
		}
	}
	p.render()

	// The renderer may have cancelled or replaced this playback.
	if gen != p.gen {
		return
	}
	p.sched.AfterFunc(p.interval, func() { p.tick(gen) })
}

func (p *Player) render() {
	if p.renderer != nil {
		p.renderer.Render(&p.state)
	}
}

func (p *Player) Phase() Phase            { return p.state.Phase }
func (p *Player) Interval() time.Duration { return p.interval }
func (p *Player) Ticks() int              { return p.ticks }
func (p *Player) Playing() bool           { return p.state.Phase == Playing }

// TotalTicks is the number of ticks the loaded trace takes to finish, zero
// when idle.
func (p *Player) TotalTicks() int {
	if p.state.Phase == Idle {
		return 0
	}
	return p.trace.Ticks()
}

// State returns the live revealed state. Callers must not modify it.
func (p *Player) State() *State { return &p.state }
