package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pathviz/internal/automation"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/storage"
)

func recordRun(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	st := storage.New(e.cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("recording %s %dx%d maze from %s...\n", e.algo, e.cfg.Maze.Rows, e.cfg.Maze.Cols, e.client.BaseURL())
	start := time.Now()
	s, err := e.solve(cmd.Context(), e.client, e.job())
	if err != nil {
		return err
	}
	id, err := e.save(st, s)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("recording id: %s\n", id)
	fmt.Println("\nmetrics:")
	for name, val := range s.values() {
		fmt.Printf("  %s: %.4f\n", name, val)
	}
	return nil
}

func (e *env) save(st *storage.Store, s *solved) (string, error) {
	ticks := storage.TickCounts{
		Visited:  s.series.Visited(),
		Frontier: s.series.Frontier(),
		Path:     s.series.Path(),
	}
	return st.Save(s.fixture, e.client.BaseURL(), ticks, s.values())
}

// runBatch records every job of a scenario file against the solver.
func runBatch(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	jobs, err := scenario.Jobs(e.cfg)
	if err != nil {
		return err
	}
	st := storage.New(e.cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running scenario %q: %d recordings, %d at a time\n", scenario.Name, len(jobs), workers)
	start := time.Now()
	results, runErr := automation.NewEnsemble(workers).Run(cmd.Context(), jobs,
		func(ctx context.Context, job automation.Job) (string, error) {
			s, err := e.solve(ctx, e.client, job)
			if err != nil {
				return "", err
			}
			return e.save(st, s)
		})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tJOB\tRESULT")
	for _, r := range results {
		outcome := r.ID
		if r.Err != nil {
			outcome = "failed: " + r.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Job.Step, r.Job, outcome)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	return runErr
}

func listRecordings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	recs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGO\tSIZE\tTIME\tVISITED\tFRONTIER\tPATH\tTICKS")

	for _, r := range recs {
		path := fmt.Sprint(r.Path)
		if !r.Found {
			path = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%d\t%s\t%d\n",
			r.ID,
			r.Algorithm,
			r.Rows, r.Cols,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Visited,
			r.Frontier,
			path,
			r.Ticks,
		)
	}

	return w.Flush()
}

func serveFixture(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	fx, err := storage.New(e.cfg.DataDir).LoadFixture(args[0])
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           solver.NewFixtureHandler(fx, e.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-cmd.Context().Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	e.logger.Info("serving recording", "id", args[0], "addr", listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func plotStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}
	if len(ticks.Visited) == 0 {
		return fmt.Errorf("no ticks to plot")
	}

	fmt.Printf("recording: %s\n", meta.ID)
	fmt.Printf("maze: %s %dx%d\n", meta.Algorithm, meta.Rows, meta.Cols)
	fmt.Printf("ticks: %d\n\n", meta.Ticks)

	series := []struct {
		caption string
		data    []float64
	}{
		{"visited cells", ticks.Visited},
		{"frontier cells", ticks.Frontier},
		{"path cells", ticks.Path},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("metrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.4f\n", name, val)
		}
	}
	return nil
}
