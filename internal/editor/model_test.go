package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pathviz/internal/editor"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/sched"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/trace"
)

type fakeSolver struct {
	maze     *solver.Maze
	trace    trace.Trace
	err      error
	requests []solver.PathRequest
}

func (f *fakeSolver) Generate(ctx context.Context, algo solver.Algorithm, rows, cols int) (*solver.Maze, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.maze, nil
}

func (f *fakeSolver) FindPath(ctx context.Context, req solver.PathRequest) (trace.Trace, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return trace.Trace{}, f.err
	}
	return f.trace, nil
}

// threeByThree is open except for the centre cell.
func threeByThree(t *testing.T) *solver.Maze {
	t.Helper()
	g, err := grid.FromMatrix([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	return &solver.Maze{Grid: g, Start: grid.Cell{X: 0, Y: 0}, End: grid.Cell{X: 2, Y: 2}}
}

func scenarioTrace() trace.Trace {
	return trace.Trace{
		Visited:  []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Frontier: []grid.Cell{{X: 0, Y: 1}},
		Path:     []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
}

func newModel(t *testing.T, fs *fakeSolver, opts ...editor.Option) (*editor.Model, *sched.Manual) {
	t.Helper()
	clock := sched.NewManual()
	m := editor.New(fs, clock, opts...)
	require.NoError(t, m.Generate(context.Background(), solver.Prim, 3, 3))
	return m, clock
}

func TestGenerateInstallsMaze(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t)}
	m, _ := newModel(t, fs)

	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, m.Start())
	assert.Equal(t, grid.Cell{X: 2, Y: 2}, m.End())
	assert.True(t, m.Grid().IsWall(grid.Cell{X: 1, Y: 1}))
	assert.Equal(t, trace.Idle, m.Phase())
}

func TestGenerateFailureKeepsState(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	m, clock := newModel(t, fs)

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	clock.RunUntilIdle(100)
	require.Equal(t, trace.Done, m.Phase())

	before := m.Grid().Matrix()
	version := m.Version()
	fs.err = solver.ErrUnreachable

	err := m.Generate(context.Background(), solver.Kruskal, 5, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrUnreachable)
	assert.Equal(t, before, m.Grid().Matrix())
	assert.Equal(t, version, m.Version())
	assert.Equal(t, trace.Done, m.Phase())
	assert.Len(t, m.Playback().Path, 2)
}

func TestReplaceMazeRejectsMarkersOnWalls(t *testing.T) {
	fs := &fakeSolver{}
	m := editor.New(fs, sched.NewManual())

	bad := threeByThree(t)
	bad.End = grid.Cell{X: 1, Y: 1}
	assert.ErrorIs(t, m.ReplaceMaze(bad), editor.ErrInvalidMaze)
	assert.ErrorIs(t, m.ReplaceMaze(nil), editor.ErrInvalidMaze)
	assert.Nil(t, m.Grid())
	assert.Zero(t, m.Rows())
}

func TestSetCell(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		wall    bool
		changed bool
	}{
		{"wall open cell", 1, 0, true, true},
		{"open wall cell", 1, 1, false, true},
		{"wall already wall", 1, 1, true, false},
		{"open already open", 2, 0, false, false},
		{"wall start marker", 0, 0, true, false},
		{"wall end marker", 2, 2, true, false},
		{"negative x", -1, 0, true, false},
		{"past last column", 3, 0, true, false},
		{"past last row", 0, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newModel(t, &fakeSolver{maze: threeByThree(t)})
			before := m.Grid().Matrix()
			version := m.Version()

			got := m.SetCell(tt.x, tt.y, tt.wall)
			assert.Equal(t, tt.changed, got)
			if !tt.changed {
				assert.Equal(t, before, m.Grid().Matrix())
				assert.Equal(t, version, m.Version())
				return
			}
			assert.Equal(t, tt.wall, m.Grid().IsWall(grid.Cell{X: tt.x, Y: tt.y}))
			assert.Greater(t, m.Version(), version)
		})
	}
}

func TestSetCellBeforeGenerate(t *testing.T) {
	m := editor.New(&fakeSolver{}, sched.NewManual())
	assert.False(t, m.SetCell(0, 0, true))
	assert.False(t, m.SetStart(0, 0))
	_, err := m.BeginSearch()
	assert.ErrorIs(t, err, editor.ErrNoMaze)
}

func TestMarkers(t *testing.T) {
	m, _ := newModel(t, &fakeSolver{maze: threeByThree(t)})

	assert.False(t, m.SetStart(1, 1), "wall")
	assert.False(t, m.SetEnd(5, 5), "out of bounds")
	assert.False(t, m.SetStart(0, 0), "unchanged")
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, m.Start())

	assert.True(t, m.SetStart(2, 0))
	assert.True(t, m.SetEnd(0, 2))
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, m.Start())
	assert.Equal(t, grid.Cell{X: 0, Y: 2}, m.End())
}

func TestApplyTools(t *testing.T) {
	m, _ := newModel(t, &fakeSolver{maze: threeByThree(t)})

	assert.True(t, m.Apply(editor.ToolWall, 1, 0))
	assert.True(t, m.Grid().IsWall(grid.Cell{X: 1, Y: 0}))
	assert.True(t, m.Apply(editor.ToolErase, 1, 0))
	assert.True(t, m.Grid().IsOpen(grid.Cell{X: 1, Y: 0}))
	assert.True(t, m.Apply(editor.ToolStart, 2, 0))
	assert.True(t, m.Apply(editor.ToolEnd, 0, 2))
	assert.False(t, m.Apply(editor.Tool(42), 1, 0))
}

func TestRunPlaysScenario(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	changes := 0
	m, clock := newModel(t, fs, editor.WithOnChange(func() { changes++ }))

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	require.Len(t, fs.requests, 1)
	assert.Equal(t, m.Grid().Matrix(), fs.requests[0].Maze)
	assert.Equal(t, m.Start(), fs.requests[0].Start)
	assert.Equal(t, m.End(), fs.requests[0].End)
	assert.Equal(t, trace.Playing, m.Phase())

	clock.RunUntilIdle(100)
	st := m.Playback()
	assert.Equal(t, trace.Done, st.Phase)
	assert.True(t, st.Visited.Has(grid.Cell{X: 1, Y: 0}))
	assert.True(t, st.Frontier.Has(grid.Cell{X: 0, Y: 1}))
	assert.Equal(t, scenarioTrace().Path, st.Path)
	assert.Positive(t, changes)
}

func TestEditWhilePlayingResetsPlayback(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	m, clock := newModel(t, fs)

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	require.True(t, clock.Step())
	require.Equal(t, trace.Playing, m.Phase())
	require.False(t, m.Playback().Empty())

	require.True(t, m.SetCell(2, 1, true))
	assert.Equal(t, trace.Idle, m.Phase())
	assert.True(t, m.Playback().Empty())

	clock.RunUntilIdle(100)
	assert.Equal(t, trace.Idle, m.Phase(), "pending ticks must not resume playback")
	assert.True(t, m.Playback().Empty())
}

func TestMutationsCancelPlaybackFirst(t *testing.T) {
	tests := []struct {
		name string
		edit func(t *testing.T, m *editor.Model) bool
	}{
		{"set cell", func(t *testing.T, m *editor.Model) bool { return m.SetCell(2, 1, true) }},
		{"set start", func(t *testing.T, m *editor.Model) bool { return m.SetStart(2, 0) }},
		{"set end", func(t *testing.T, m *editor.Model) bool { return m.SetEnd(0, 2) }},
		{"replace maze", func(t *testing.T, m *editor.Model) bool { return m.ReplaceMaze(threeByThree(t)) == nil }},
		{"generate", func(t *testing.T, m *editor.Model) bool {
			return m.Generate(context.Background(), solver.Prim, 3, 3) == nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				m        *editor.Model
				cancels  int
				start    grid.Cell
				end      grid.Cell
				seen     *grid.Grid
				sideWall bool
			)
			hooks := trace.Hooks{OnCancel: func(*trace.State) {
				cancels++
				start, end, seen = m.Start(), m.End(), m.Grid()
				sideWall = m.Grid().IsWall(grid.Cell{X: 2, Y: 1})
			}}

			fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
			m, clock := newModel(t, fs, editor.WithPlayerOptions(trace.WithHooks(hooks)))
			require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
			require.True(t, clock.Step())
			require.Equal(t, trace.Playing, m.Phase())

			before := m.Grid()
			cancels = 0
			require.True(t, tt.edit(t, m))

			assert.Equal(t, 1, cancels)
			assert.Equal(t, grid.Cell{X: 0, Y: 0}, start, "cancel must see the old start")
			assert.Equal(t, grid.Cell{X: 2, Y: 2}, end, "cancel must see the old end")
			assert.Same(t, before, seen)
			assert.False(t, sideWall, "cancel must run before the grid changes")

			clock.RunUntilIdle(100)
			assert.Equal(t, trace.Idle, m.Phase())
			assert.True(t, m.Playback().Empty())
			assert.Equal(t, 1, cancels)
		})
	}
}

func TestRejectedEditKeepsPlayback(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	m, clock := newModel(t, fs)

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	require.True(t, clock.Step())

	assert.False(t, m.SetCell(9, 9, true))
	assert.False(t, m.SetCell(0, 0, true))
	assert.Equal(t, trace.Playing, m.Phase())
}

func TestStaleSearchIsDropped(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t)}
	m, clock := newModel(t, fs)

	req, err := m.BeginSearch()
	require.NoError(t, err)
	require.True(t, m.SetCell(1, 0, true))

	err = m.Play(req, scenarioTrace(), trace.DefaultSpeed)
	assert.ErrorIs(t, err, editor.ErrStaleSearch)
	assert.Equal(t, trace.Idle, m.Phase())
	assert.Zero(t, clock.Pending())
}

func TestSupersededSearchIsDropped(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t)}
	m, _ := newModel(t, fs)

	first, err := m.BeginSearch()
	require.NoError(t, err)
	second, err := m.BeginSearch()
	require.NoError(t, err)

	assert.ErrorIs(t, m.Play(first, scenarioTrace(), trace.DefaultSpeed), editor.ErrStaleSearch)
	assert.NoError(t, m.Play(second, scenarioTrace(), trace.DefaultSpeed))
	assert.Equal(t, trace.Playing, m.Phase())
}

func TestSearchFailureLeavesPlayerIdle(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	m, clock := newModel(t, fs)

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	clock.RunUntilIdle(100)
	require.Equal(t, trace.Done, m.Phase())

	fs.err = &solver.NetworkError{Op: "find-path", Err: solver.ErrBadStatus}
	err := m.Run(context.Background(), trace.DefaultSpeed)
	require.Error(t, err)

	var netErr *solver.NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, solver.ErrBadStatus)
	assert.Equal(t, trace.Idle, m.Phase())
	assert.True(t, m.Playback().Empty())
}

func TestCancel(t *testing.T) {
	fs := &fakeSolver{maze: threeByThree(t), trace: scenarioTrace()}
	m, clock := newModel(t, fs)

	m.Cancel()
	assert.Equal(t, trace.Idle, m.Phase())

	require.NoError(t, m.Run(context.Background(), trace.DefaultSpeed))
	clock.Step()
	m.Cancel()
	assert.Equal(t, trace.Idle, m.Phase())
	assert.True(t, m.Playback().Empty())

	clock.RunUntilIdle(100)
	m.Cancel()
	assert.Equal(t, trace.Idle, m.Phase())
}

func TestParseTool(t *testing.T) {
	for _, tool := range editor.Tools() {
		got, err := editor.ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}
	_, err := editor.ParseTool("brush")
	assert.Error(t, err)
}
