package solver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/trace"
)

// Fixture is a recorded maze together with the trace the service produced
// for it.
type Fixture struct {
	Algorithm Algorithm   `yaml:"algorithm" json:"algorithm"`
	Maze      [][]int     `yaml:"maze" json:"maze"`
	Start     grid.Cell   `yaml:"start" json:"start"`
	End       grid.Cell   `yaml:"end" json:"end"`
	Trace     trace.Trace `yaml:"trace" json:"trace"`
}

// NewFixture pairs a maze with its trace.
func NewFixture(algo Algorithm, mz *Maze, tr trace.Trace) *Fixture {
	return &Fixture{
		Algorithm: algo,
		Maze:      mz.Grid.Matrix(),
		Start:     mz.Start,
		End:       mz.End,
		Trace:     tr,
	}
}

// Validate checks that the recorded maze is usable.
func (f *Fixture) Validate() error {
	resp := generateResponse{Start: &f.Start, End: &f.End}
	for _, row := range f.Maze {
		r := make([]float64, len(row))
		for i, v := range row {
			r[i] = float64(v)
		}
		resp.Maze = append(resp.Maze, r)
	}
	mz, err := resp.maze()
	if err != nil {
		return err
	}
	_, err = (&pathResponse{Visited: f.Trace.Visited, Frontier: f.Trace.Frontier, Path: f.Trace.Path}).
		trace(mz.Grid.Rows(), mz.Grid.Cols())
	return err
}

// Matches reports whether req asks for exactly the recorded search.
func (f *Fixture) Matches(req PathRequest) bool {
	return req.Start == f.Start && req.End == f.End && reflect.DeepEqual(req.Maze, f.Maze)
}

// Replay answers solver calls from a fixture without a service, so recordings
// can be played back offline.
type Replay struct {
	fx *Fixture
}

func NewReplay(fx *Fixture) *Replay {
	return &Replay{fx: fx}
}

// Generate returns the recorded maze whatever size is asked for.
func (r *Replay) Generate(ctx context.Context, algo Algorithm, rows, cols int) (*Maze, error) {
	g, err := grid.FromMatrix(r.fx.Maze)
	if err != nil {
		return nil, err
	}
	return &Maze{Grid: g, Start: r.fx.Start, End: r.fx.End}, nil
}

func (r *Replay) FindPath(ctx context.Context, req PathRequest) (trace.Trace, error) {
	if !r.fx.Matches(req) {
		return trace.Trace{}, ErrNotRecorded
	}
	return r.fx.Trace.Clone(), nil
}

// NewFixtureHandler serves fx over the solver protocol. Generate always
// returns the recorded maze. Find-path returns the recorded trace when the
// request matches the recording and 422 otherwise, since the handler cannot
// search.
func NewFixtureHandler(fx *Fixture, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, pingResponse{Message: "fixture server is running"})
	})

	r.Get("/astar/generate", func(w http.ResponseWriter, r *http.Request) {
		logger.Info("generate", "algorithm", r.URL.Query().Get("algorithm"),
			"rows", r.URL.Query().Get("rows"), "cols", r.URL.Query().Get("cols"))
		writeJSON(w, logger, http.StatusOK, map[string]any{
			"maze":  fx.Maze,
			"start": fx.Start,
			"end":   fx.End,
		})
	})

	r.Post("/astar/find-path", func(w http.ResponseWriter, r *http.Request) {
		var req PathRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("find-path: invalid request body", "error", err)
			writeJSON(w, logger, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
			return
		}
		if !fx.Matches(req) {
			logger.Warn("find-path: grid differs from recording", "start", req.Start, "end", req.End)
			writeJSON(w, logger, http.StatusUnprocessableEntity, map[string]string{"detail": ErrNotRecorded.Error()})
			return
		}

		// A missing path is sent as null, like the live service does.
		var path []grid.Cell
		if len(fx.Trace.Path) > 0 {
			path = fx.Trace.Path
		}
		writeJSON(w, logger, http.StatusOK, pathResponse{
			Path:     path,
			Visited:  nonNil(fx.Trace.Visited),
			Frontier: nonNil(fx.Trace.Frontier),
		})
	})

	return r
}

func nonNil(cells []grid.Cell) []grid.Cell {
	if cells == nil {
		return []grid.Cell{}
	}
	return cells
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response", "error", err)
	}
}
