package solver_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/trace"
)

func testFixture() *solver.Fixture {
	return &solver.Fixture{
		Algorithm: solver.Prim,
		Maze:      [][]int{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		Start:     grid.Cell{X: 0, Y: 0},
		End:       grid.Cell{X: 2, Y: 2},
		Trace: trace.Trace{
			Visited:  []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
			Frontier: []grid.Cell{{X: 0, Y: 1}},
			Path:     []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
		},
	}
}

func TestFixtureServerRoundTrip(t *testing.T) {
	fx := testFixture()
	srv := httptest.NewServer(solver.NewFixtureHandler(fx, nil))
	defer srv.Close()
	client := solver.NewClient(srv.URL)
	ctx := context.Background()

	msg, err := client.Ping(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	mz, err := client.Generate(ctx, solver.Prim, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, fx.Maze, mz.Grid.Matrix())
	assert.Equal(t, fx.Start, mz.Start)

	tr, err := client.FindPath(ctx, solver.PathRequest{Maze: mz.Grid.Matrix(), Start: mz.Start, End: mz.End})
	require.NoError(t, err)
	assert.Equal(t, fx.Trace, tr)
}

func TestFixtureServerRejectsEditedGrid(t *testing.T) {
	fx := testFixture()
	srv := httptest.NewServer(solver.NewFixtureHandler(fx, nil))
	defer srv.Close()
	client := solver.NewClient(srv.URL)

	edited := [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	_, err := client.FindPath(context.Background(), solver.PathRequest{Maze: edited, Start: fx.Start, End: fx.End})
	assert.ErrorIs(t, err, solver.ErrBadStatus)
}

func TestFixtureServerSendsNullPath(t *testing.T) {
	fx := testFixture()
	fx.Trace.Path = nil
	srv := httptest.NewServer(solver.NewFixtureHandler(fx, nil))
	defer srv.Close()

	tr, err := solver.NewClient(srv.URL).FindPath(context.Background(),
		solver.PathRequest{Maze: fx.Maze, Start: fx.Start, End: fx.End})
	require.NoError(t, err)
	assert.Empty(t, tr.Path)
	assert.Len(t, tr.Visited, 2)
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
	status int
}

func (w *brokenWriter) Header() http.Header { return w.header }
func (w *brokenWriter) WriteHeader(status int) { w.status = status }
func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestFixtureServerLogsWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	h := solver.NewFixtureHandler(testFixture(), logging.NewWithWriter(&buf, slog.LevelDebug))

	w := &brokenWriter{header: http.Header{}}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Contains(t, buf.String(), "write response")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestFixtureValidate(t *testing.T) {
	fx := testFixture()
	assert.NoError(t, fx.Validate())

	fx.Start = grid.Cell{X: 1, Y: 1}
	assert.ErrorIs(t, fx.Validate(), grid.ErrWallCell)

	fx = testFixture()
	fx.Trace.Visited = append(fx.Trace.Visited, grid.Cell{X: 3, Y: 0})
	assert.ErrorIs(t, fx.Validate(), grid.ErrOutOfBounds)
}

func TestNewFixture(t *testing.T) {
	g, err := grid.FromMatrix([][]int{{0, 1}})
	require.NoError(t, err)
	mz := &solver.Maze{Grid: g, Start: grid.Cell{}, End: grid.Cell{}}

	fx := solver.NewFixture(solver.Kruskal, mz, trace.Trace{})
	assert.Equal(t, [][]int{{0, 1}}, fx.Maze)
	assert.Equal(t, solver.Kruskal, fx.Algorithm)
}

func TestReplay(t *testing.T) {
	fx := testFixture()
	r := solver.NewReplay(fx)
	ctx := context.Background()

	mz, err := r.Generate(ctx, solver.Kruskal, 20, 20)
	require.NoError(t, err)
	assert.Equal(t, fx.Maze, mz.Grid.Matrix())
	assert.Equal(t, fx.End, mz.End)

	req := solver.PathRequest{Maze: mz.Grid.Matrix(), Start: mz.Start, End: mz.End}
	tr, err := r.FindPath(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, fx.Trace, tr)

	tr.Visited[0] = grid.Cell{X: 2, Y: 2}
	again, err := r.FindPath(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, again.Visited[0], "replayed traces are copies")

	req.Maze[0][1] = 1
	_, err = r.FindPath(ctx, req)
	assert.ErrorIs(t, err, solver.ErrNotRecorded)
}
