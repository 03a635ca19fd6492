package automation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/solver"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario defines a scripted sequence of recordings
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single entry in a scenario. Size sets rows and cols together;
// Repeat records the same settings several times.
type Step struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	Speed     int    `yaml:"speed"`
	Repeat    int    `yaml:"repeat"`
}

// Job is one recording to make.
type Job struct {
	Step      int
	Algorithm solver.Algorithm
	Rows      int
	Cols      int
	Speed     int
}

func (j Job) String() string {
	return fmt.Sprintf("%s %dx%d", j.Algorithm, j.Rows, j.Cols)
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Jobs expands the steps into jobs. Missing fields fall back to defaults and
// sizes and speeds are clamped like the config values.
func (s *Scenario) Jobs(defaults *config.Config) ([]Job, error) {
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScenario
	}

	var jobs []Job
	for i, step := range s.Steps {
		name := step.Algorithm
		if name == "" {
			name = defaults.Maze.Algorithm
		}
		algo, err := solver.ParseAlgorithm(name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		rows, cols := defaults.Maze.Rows, defaults.Maze.Cols
		if step.Size > 0 {
			rows, cols = step.Size, step.Size
		}
		if step.Rows > 0 {
			rows = step.Rows
		}
		if step.Cols > 0 {
			cols = step.Cols
		}
		speed := defaults.Playback.Speed
		if step.Speed > 0 {
			speed = step.Speed
		}

		for n := 0; n < max(step.Repeat, 1); n++ {
			jobs = append(jobs, Job{
				Step:      i + 1,
				Algorithm: algo,
				Rows:      config.ClampSize(rows),
				Cols:      config.ClampSize(cols),
				Speed:     config.ClampSpeed(speed),
			})
		}
	}
	return jobs, nil
}
