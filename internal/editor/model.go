package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/trace"
)

// Solver is the remote collaborator producing mazes and traces.
type Solver interface {
	Generate(ctx context.Context, algo solver.Algorithm, rows, cols int) (*solver.Maze, error)
	FindPath(ctx context.Context, req solver.PathRequest) (trace.Trace, error)
}

// SearchRequest is a snapshot of the grid taken when a search was issued.
type SearchRequest struct {
	Version uint64
	Search  uint64
	Path    solver.PathRequest
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithOnChange registers a callback fired after every visible change: edits,
// new mazes, cancellations and rendered playback ticks.
func WithOnChange(fn func()) Option {
	return func(m *Model) { m.onChange = fn }
}

// WithPlayerOptions passes options through to the trace player.
func WithPlayerOptions(opts ...trace.Option) Option {
	return func(m *Model) { m.playerOpts = append(m.playerOpts, opts...) }
}

// Model is the grid model of one visualization instance. It is not safe for
// concurrent use; call it from the scheduler's thread only.
type Model struct {
	solver     Solver
	player     *trace.Player
	playerOpts []trace.Option
	logger     *slog.Logger
	onChange   func()

	grid       *grid.Grid
	start, end grid.Cell
	version    uint64
	search     uint64
}

func New(s Solver, sched trace.Scheduler, opts ...Option) *Model {
	m := &Model{
		solver: s,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	playerOpts := append([]trace.Option{trace.WithLogger(m.logger)}, m.playerOpts...)
	playerOpts = append(playerOpts,
		trace.WithRenderer(trace.RendererFunc(func(*trace.State) { m.changed() })),
		trace.WithHooks(trace.Hooks{OnDone: func(*trace.State, int) { m.changed() }}),
	)
	m.player = trace.NewPlayer(sched, playerOpts...)
	return m
}

// Generate requests a new maze and installs it. On failure the current maze,
// markers and playback are left as they were.
func (m *Model) Generate(ctx context.Context, algo solver.Algorithm, rows, cols int) error {
	m.logger.Info("generating maze", "algorithm", algo, "rows", rows, "cols", cols)
	mz, err := m.solver.Generate(ctx, algo, rows, cols)
	if err != nil {
		return fmt.Errorf("generate maze: %w", err)
	}
	return m.ReplaceMaze(mz)
}

// ReplaceMaze installs mz wholesale, resetting markers and playback.
func (m *Model) ReplaceMaze(mz *solver.Maze) error {
	if mz == nil || mz.Grid == nil || !mz.Grid.IsOpen(mz.Start) || !mz.Grid.IsOpen(mz.End) {
		return ErrInvalidMaze
	}
	m.invalidate()
	m.grid = mz.Grid.Clone()
	m.start, m.end = mz.Start, mz.End
	m.changed()
	return nil
}

// SetCell makes (x, y) a wall or an open cell. Out-of-bounds coordinates, no-op
// writes and walling a marker cell are ignored and report false.
func (m *Model) SetCell(x, y int, wall bool) bool {
	if m.grid == nil {
		return false
	}
	c := grid.Cell{X: x, Y: y}
	want := grid.Open
	if wall {
		want = grid.Wall
	}
	if !m.grid.InBounds(c) || m.grid.At(c) == want {
		return false
	}
	if wall && (c == m.start || c == m.end) {
		return false
	}

	m.invalidate()
	m.grid.Set(c, want)
	m.changed()
	return true
}

// SetStart moves the start marker. Walls and out-of-bounds targets are
// rejected.
func (m *Model) SetStart(x, y int) bool {
	return m.moveMarker(&m.start, grid.Cell{X: x, Y: y})
}

// SetEnd moves the end marker. Walls and out-of-bounds targets are rejected.
func (m *Model) SetEnd(x, y int) bool {
	return m.moveMarker(&m.end, grid.Cell{X: x, Y: y})
}

func (m *Model) moveMarker(marker *grid.Cell, c grid.Cell) bool {
	if m.grid == nil || !m.grid.IsOpen(c) || *marker == c {
		return false
	}
	m.invalidate()
	*marker = c
	m.changed()
	return true
}

// Apply performs tool at (x, y).
func (m *Model) Apply(tool Tool, x, y int) bool {
	switch tool {
	case ToolWall:
		return m.SetCell(x, y, true)
	case ToolErase:
		return m.SetCell(x, y, false)
	case ToolStart:
		return m.SetStart(x, y)
	case ToolEnd:
		return m.SetEnd(x, y)
	}
	return false
}

// BeginSearch cancels playback and snapshots the grid for a find-path call.
func (m *Model) BeginSearch() (SearchRequest, error) {
	if m.grid == nil {
		return SearchRequest{}, ErrNoMaze
	}
	m.player.Cancel()
	m.search++
	m.changed()

	return SearchRequest{
		Version: m.version,
		Search:  m.search,
		Path: solver.PathRequest{
			Maze:  m.grid.Matrix(),
			Start: m.start,
			End:   m.end,
		},
	}, nil
}

// Play starts playback of the trace answering req. Results for a grid that
// has been edited since, or for a superseded search, are rejected.
func (m *Model) Play(req SearchRequest, tr trace.Trace, speed int) error {
	if req.Version != m.version || req.Search != m.search {
		m.logger.Warn("dropping stale search result",
			"request_version", req.Version, "version", m.version,
			"request_search", req.Search, "search", m.search)
		return ErrStaleSearch
	}
	m.logger.Info("search finished",
		"visited", len(tr.Visited), "frontier", len(tr.Frontier), "path", len(tr.Path))
	return m.player.Play(tr, speed)
}

// Run searches the current grid and plays the result. It blocks on the
// solver; use BeginSearch and Play from hosts that cannot.
func (m *Model) Run(ctx context.Context, speed int) error {
	req, err := m.BeginSearch()
	if err != nil {
		return err
	}
	tr, err := m.solver.FindPath(ctx, req.Path)
	if err != nil {
		return fmt.Errorf("find path: %w", err)
	}
	return m.Play(req, tr, speed)
}

// Cancel stops playback and clears the revealed trace.
func (m *Model) Cancel() {
	m.player.Cancel()
	m.changed()
}

// invalidate runs before every mutation: the trace belongs to the old grid.
func (m *Model) invalidate() {
	m.player.Cancel()
	m.version++
}

func (m *Model) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// Grid returns the live grid, nil before the first maze. Callers must not
// modify it.
func (m *Model) Grid() *grid.Grid { return m.grid }

func (m *Model) Start() grid.Cell       { return m.start }
func (m *Model) End() grid.Cell         { return m.end }
func (m *Model) Version() uint64        { return m.version }
func (m *Model) Search() uint64         { return m.search }
func (m *Model) Player() *trace.Player  { return m.player }
func (m *Model) Playback() *trace.State { return m.player.State() }
func (m *Model) Phase() trace.Phase     { return m.player.Phase() }

func (m *Model) Rows() int {
	if m.grid == nil {
		return 0
	}
	return m.grid.Rows()
}

func (m *Model) Cols() int {
	if m.grid == nil {
		return 0
	}
	return m.grid.Cols()
}
