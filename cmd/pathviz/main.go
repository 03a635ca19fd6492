package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/metrics"
	"github.com/san-kum/pathviz/internal/render"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/trace"
	"github.com/san-kum/pathviz/internal/viz"
)

var (
	configFile  string
	preset      string
	baseURL     string
	logLevel    string
	metricsAddr string
	dataDir     string
	theme       string
	algorithm   string
	size        int
	speed       int
	// Output
	braille   bool
	plain     bool
	finalOnly bool
	frameRate int
	format    string
	outFile   string
	// Recordings
	recording string
	listen    string
	workers   int
)

// main registers the commands and runs the interactive editor when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "pathviz",
		Short:         "maze path-search visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&baseURL, "url", solver.DefaultBaseURL, "solver service base URL")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.StringVar(&dataDir, "data", ".pathviz", "data directory")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	pf.StringVar(&algorithm, "algorithm", config.DefaultAlgorithm, "maze algorithm (prim, kruskal)")
	pf.IntVar(&size, "size", config.DefaultSize, "maze rows and columns (5-25)")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "playback speed (1-100)")

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "check that the solver service is up",
		RunE:  pingSolver,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a maze and print it",
		RunE:  generateMaze,
	}
	generateCmd.Flags().BoolVar(&braille, "braille", false, "draw with braille dots")
	generateCmd.Flags().BoolVar(&plain, "plain", false, "ASCII output without colour")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "generate a maze, search it and play the trace in the terminal",
		RunE:  runPlayback,
	}
	runCmd.Flags().BoolVar(&finalOnly, "final", false, "print only the finished board")
	runCmd.Flags().BoolVar(&plain, "plain", false, "ASCII frames without colour or screen control")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	runCmd.Flags().StringVar(&recording, "recording", "", "replay a recording instead of calling the solver")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the finished board as svg, png or json",
		RunE:  exportBoard,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "svg, png or json")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&recording, "recording", "", "export a recording instead of calling the solver")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record a maze and its trace from the solver",
		RunE:  recordRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "record every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 4, "recordings in flight at once")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recordings",
		RunE:  listRecordings,
	}

	serveCmd := &cobra.Command{
		Use:   "serve-fixture [recording_id]",
		Short: "serve a recording over the solver protocol",
		Args:  cobra.ExactArgs(1),
		RunE:  serveFixture,
	}
	serveCmd.Flags().StringVar(&listen, "addr", ":8000", "listen address")

	statsCmd := &cobra.Command{
		Use:   "stats [recording_id]",
		Short: "plot revealed cells per tick",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Printf("  %-8s %dx%d %s speed=%d\n", name, p.Rows, p.Cols, p.Algorithm, p.Speed)
			}
			return nil
		},
	}

	rootCmd.AddCommand(pingCmd, generateCmd, runCmd, exportCmd, recordCmd, batchCmd, listCmd, serveCmd, statsCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// env is what every command needs once flags and config are resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	client *solver.Client
	algo   solver.Algorithm
	hooks  []trace.Hooks
}

// loadConfig reads the config file, applies the preset and then any flag
// set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Solver.BaseURL = baseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Changed("algorithm") {
		cfg.Maze.Algorithm = algorithm
	}
	if flags.Changed("size") {
		cfg.Maze.Rows, cfg.Maze.Cols = size, size
	}
	if flags.Changed("speed") {
		cfg.Playback.Speed = speed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves configuration, builds the logger and solver client, and
// starts the metrics server when one is configured.
func setup(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	algo, err := solver.ParseAlgorithm(cfg.Maze.Algorithm)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		logger: logging.NewWithWriter(logOut, level),
		algo:   algo,
	}
	opts := []solver.Option{
		solver.WithTimeout(cfg.Solver.Timeout),
		solver.WithLogger(e.logger),
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		col, err := metrics.NewCollector(reg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, solver.WithObserver(col.ObserveSolver))
		e.hooks = append(e.hooks, col.Hooks())

		go func() {
			if err := metrics.Serve(cmd.Context(), cfg.MetricsAddr, reg, e.logger); err != nil {
				e.logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	e.client = solver.NewClient(cfg.Solver.BaseURL, opts...)
	return e, nil
}

func (e *env) palette() render.Palette {
	p, _ := render.PaletteByName(e.cfg.View.Theme)
	return p
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The editor owns the terminal, so logs go to a file.
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "pathviz.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()

	e, err := setup(cmd, logFile)
	if err != nil {
		return err
	}
	return viz.Run(cmd.Context(), viz.Options{
		Client:    e.client,
		Theme:     cfg.View.Theme,
		Algorithm: e.algo,
		Size:      cfg.Maze.Rows,
		Speed:     cfg.Playback.Speed,
		Logger:    e.logger,
		Hooks:     e.hooks,
	})
}

func pingSolver(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	msg, err := e.client.Ping(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", e.client.BaseURL(), msg)
	return nil
}

func generateMaze(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	mz, err := e.client.Generate(cmd.Context(), e.algo, e.cfg.Maze.Rows, e.cfg.Maze.Cols)
	if err != nil {
		return err
	}

	painter := render.NewPainter(e.palette())
	g := mz.Grid
	switch {
	case braille:
		surf := render.NewBrailleSurface(g.Cols(), g.Rows())
		painter.Paint(surf, g, mz.Start, mz.End, nil)
		fmt.Print(surf.String())
	default:
		surf := render.NewTerminalSurface(g.Cols(), g.Rows(), e.palette().Background)
		painter.Paint(surf, g, mz.Start, mz.End, nil)
		if plain {
			fmt.Print(surf.Text())
		} else {
			fmt.Print(surf.String())
		}
	}
	fmt.Printf("%s %dx%d start=%v end=%v open=%d\n",
		e.algo, g.Rows(), g.Cols(), mz.Start, mz.End, g.Count(grid.Open))
	return nil
}
