package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pathviz/internal/solver"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultSize      = 20
	MinSize          = 5
	MaxSize          = 25
	DefaultAlgorithm = "prim"
	DefaultSpeed     = 81
	MinSpeed         = 1
	MaxSpeed         = 100
	DefaultTheme     = "cyberpunk"
	DefaultWidth     = 600
	DefaultHeight    = 600
	DefaultLogLevel  = "info"
)

var (
	ErrInvalidAlgorithm = errors.New("config: algorithm must be prim or kruskal")
	ErrInvalidBaseURL   = errors.New("config: solver base_url is empty")
	ErrUnknownPreset    = errors.New("config: unknown preset")
)

type Config struct {
	Solver      SolverConfig   `yaml:"solver"`
	Maze        MazeConfig     `yaml:"maze"`
	Playback    PlaybackConfig `yaml:"playback"`
	View        ViewConfig     `yaml:"view"`
	LogLevel    string         `yaml:"log_level"`
	MetricsAddr string         `yaml:"metrics_addr"`
	DataDir     string         `yaml:"data_dir"`
}

type SolverConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MazeConfig struct {
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	Algorithm string `yaml:"algorithm"`
}

type PlaybackConfig struct {
	Speed int `yaml:"speed"`
}

type ViewConfig struct {
	Theme  string `yaml:"theme"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Maze: MazeConfig{
			Rows:      DefaultSize,
			Cols:      DefaultSize,
			Algorithm: DefaultAlgorithm,
		},
		Playback: PlaybackConfig{
			Speed: DefaultSpeed,
		},
		View: ViewConfig{
			Theme:  DefaultTheme,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		LogLevel: DefaultLogLevel,
		DataDir:  ".pathviz",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps sizes and speed into range and rejects values that cannot
// be clamped.
func (c *Config) Validate() error {
	if c.Solver.BaseURL == "" {
		return ErrInvalidBaseURL
	}
	if c.Solver.Timeout <= 0 {
		c.Solver.Timeout = DefaultTimeout
	}
	algo, err := solver.ParseAlgorithm(c.Maze.Algorithm)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAlgorithm, c.Maze.Algorithm)
	}
	c.Maze.Algorithm = string(algo)
	c.Maze.Rows = ClampSize(c.Maze.Rows)
	c.Maze.Cols = ClampSize(c.Maze.Cols)
	c.Playback.Speed = ClampSpeed(c.Playback.Speed)
	if c.View.Width <= 0 {
		c.View.Width = DefaultWidth
	}
	if c.View.Height <= 0 {
		c.View.Height = DefaultHeight
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return nil
}

func ClampSize(n int) int {
	return clamp(n, MinSize, MaxSize)
}

func ClampSpeed(n int) int {
	return clamp(n, MinSpeed, MaxSpeed)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
