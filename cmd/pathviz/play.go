package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/pathviz/internal/automation"
	"github.com/san-kum/pathviz/internal/editor"
	"github.com/san-kum/pathviz/internal/metrics"
	"github.com/san-kum/pathviz/internal/render"
	"github.com/san-kum/pathviz/internal/sched"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/storage"
	"github.com/san-kum/pathviz/internal/trace"
	"github.com/san-kum/pathviz/internal/tui"
)

// source returns the solver to use: the live service, or a recording when
// --recording is set.
func (e *env) source() (editor.Solver, string, error) {
	if recording == "" {
		return e.client, e.client.BaseURL(), nil
	}
	st := storage.New(e.cfg.DataDir)
	fx, err := st.LoadFixture(recording)
	if err != nil {
		return nil, "", err
	}
	e.algo = fx.Algorithm
	return solver.NewReplay(fx), "recording " + recording, nil
}

func runPlayback(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	src, label, err := e.source()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	loop := sched.NewLoop()
	var (
		model *editor.Model
		live  *tui.LiveRenderer
	)
	hooks := append([]trace.Hooks(nil), e.hooks...)
	hooks = append(hooks, trace.Hooks{OnDone: func(st *trace.State, ticks int) {
		if !finalOnly {
			live.Hooks().OnDone(st, ticks)
		}
		loop.Stop()
	}})
	playerOpts := make([]trace.Option, 0, len(hooks))
	for _, h := range hooks {
		playerOpts = append(playerOpts, trace.WithHooks(h))
	}

	model = editor.New(src, loop,
		editor.WithLogger(e.logger),
		editor.WithPlayerOptions(playerOpts...),
		editor.WithOnChange(func() {
			if !finalOnly && model.Phase() == trace.Playing {
				live.Render(model.Playback())
			}
		}),
	)

	liveOpts := []tui.LiveOption{tui.WithTitle(fmt.Sprintf("%s via %s", e.algo, label))}
	if plain || finalOnly {
		liveOpts = append(liveOpts, tui.WithPlainText())
	}
	live = tui.NewLiveRenderer(os.Stdout, model, e.palette(), frameRate, liveOpts...)

	if err := model.Generate(ctx, e.algo, e.cfg.Maze.Rows, e.cfg.Maze.Cols); err != nil {
		return err
	}

	live.Start()
	defer live.Stop()
	if err := model.Run(ctx, e.cfg.Playback.Speed); err != nil {
		return err
	}
	if err := loop.Run(ctx); err != nil {
		return err
	}

	st := model.Playback()
	if finalOnly {
		fmt.Print(live.Frame(st))
	}
	if len(st.Path) == 0 {
		fmt.Printf("no path: visited=%d frontier=%d ticks=%d\n",
			st.Visited.Len(), st.Frontier.Len(), model.Player().Ticks())
		return nil
	}
	fmt.Printf("path length %d: visited=%d frontier=%d ticks=%d\n",
		len(st.Path), st.Visited.Len(), st.Frontier.Len(), model.Player().Ticks())
	return nil
}

// solved is a search replayed to completion without waiting between ticks.
type solved struct {
	model      *editor.Model
	fixture    *solver.Fixture
	series     *metrics.Series
	coverage   *metrics.Coverage
	efficiency *metrics.Efficiency
}

func (s *solved) values() map[string]float64 {
	return map[string]float64{
		s.coverage.Name():   s.coverage.Value(),
		s.efficiency.Name(): s.efficiency.Value(),
		s.series.Name():     s.series.Value(),
	}
}

// job describes the recording the resolved config asks for.
func (e *env) job() automation.Job {
	return automation.Job{
		Algorithm: e.algo,
		Rows:      e.cfg.Maze.Rows,
		Cols:      e.cfg.Maze.Cols,
		Speed:     e.cfg.Playback.Speed,
	}
}

// solve generates a maze, searches it and plays the trace on a manual clock
// so the final state is available immediately.
func (e *env) solve(ctx context.Context, src editor.Solver, job automation.Job) (*solved, error) {
	clock := sched.NewManual()
	s := &solved{
		series:     metrics.NewSeries(),
		coverage:   metrics.NewCoverage(nil),
		efficiency: metrics.NewEfficiency(),
	}
	playerOpts := []trace.Option{trace.WithHooks(metrics.Attach(s.series, s.coverage, s.efficiency))}
	for _, h := range e.hooks {
		playerOpts = append(playerOpts, trace.WithHooks(h))
	}
	s.model = editor.New(src, clock, editor.WithLogger(e.logger), editor.WithPlayerOptions(playerOpts...))

	if err := s.model.Generate(ctx, job.Algorithm, job.Rows, job.Cols); err != nil {
		return nil, err
	}
	s.coverage.SetGrid(s.model.Grid())

	req, err := s.model.BeginSearch()
	if err != nil {
		return nil, err
	}
	tr, err := src.FindPath(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("find path: %w", err)
	}
	if err := s.model.Play(req, tr, job.Speed); err != nil {
		return nil, err
	}
	clock.RunUntilIdle(0)

	mz := &solver.Maze{Grid: s.model.Grid(), Start: s.model.Start(), End: s.model.End()}
	s.fixture = solver.NewFixture(job.Algorithm, mz, tr)
	return s, nil
}

func exportBoard(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	src, _, err := e.source()
	if err != nil {
		return err
	}
	s, err := e.solve(cmd.Context(), src, e.job())
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	m := s.model
	layout := render.NewLayout(float64(e.cfg.View.Width), float64(e.cfg.View.Height), m.Cols(), m.Rows())
	painter := render.NewPainter(e.palette())

	switch format {
	case "svg":
		surf := render.NewSVGSurface(layout, e.palette().Background)
		painter.Paint(surf, m.Grid(), m.Start(), m.End(), m.Playback())
		_, err = surf.WriteTo(out)
	case "png":
		if outFile == "" {
			return fmt.Errorf("png export needs --out")
		}
		surf := render.NewImageSurface(layout, e.palette().Background)
		painter.Paint(surf, m.Grid(), m.Start(), m.End(), m.Playback())
		err = surf.EncodePNG(out)
	case "json":
		err = storage.WriteJSON(out, s.fixture)
	default:
		return fmt.Errorf("unknown format: %s (available: svg, png, json)", format)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", format, outFile)
	}
	return nil
}
