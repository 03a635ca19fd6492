package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pathviz/internal/solver"
)

var ErrInvalidID = errors.New("storage: invalid recording id")

// Store keeps recordings on disk, one directory per recording:
//
//	<id>/metadata.json  summary
//	<id>/fixture.yaml   maze and trace, replayable by the fixture server
//	<id>/ticks.csv      revealed counts after every tick
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RecordingMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Timestamp time.Time          `json:"timestamp"`
	Source    string             `json:"source"`
	Visited   int                `json:"visited"`
	Frontier  int                `json:"frontier"`
	Path      int                `json:"path"`
	Ticks     int                `json:"ticks"`
	Found     bool               `json:"found"`
	Metrics   map[string]float64 `json:"metrics"`
}

// TickCounts holds one value per revealing tick for each layer.
type TickCounts struct {
	Visited  []float64
	Frontier []float64
	Path     []float64
}

// Save writes fx and its tick counts. source names where the recording came
// from, usually the solver URL.
func (s *Store) Save(fx *solver.Fixture, source string, ticks TickCounts, metrics map[string]float64) (string, error) {
	if err := fx.Validate(); err != nil {
		return "", fmt.Errorf("invalid fixture: %w", err)
	}

	now := time.Now()
	rows := len(fx.Maze)
	cols := 0
	if rows > 0 {
		cols = len(fx.Maze[0])
	}

	base := fmt.Sprintf("%s_%dx%d_%d", fx.Algorithm, rows, cols, now.Unix())
	id, runDir, err := s.mkdirUnique(base)
	if err != nil {
		return "", err
	}

	meta := RecordingMetadata{
		ID:        id,
		Algorithm: string(fx.Algorithm),
		Rows:      rows,
		Cols:      cols,
		Timestamp: now,
		Source:    source,
		Visited:   len(fx.Trace.Visited),
		Frontier:  len(fx.Trace.Frontier),
		Path:      len(fx.Trace.Path),
		Ticks:     fx.Trace.Ticks(),
		Found:     fx.Trace.Found(),
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	fxData, err := yaml.Marshal(fx)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "fixture.yaml"), fxData, 0644); err != nil {
		return "", err
	}

	if err := writeTicks(filepath.Join(runDir, "ticks.csv"), ticks); err != nil {
		return "", err
	}

	return id, nil
}

func (s *Store) mkdirUnique(base string) (string, string, error) {
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeTicks(path string, ticks TickCounts) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"tick", "visited", "frontier", "path"}); err != nil {
		return err
	}

	for i := range ticks.Visited {
		row := []string{
			strconv.Itoa(i + 1),
			formatCount(ticks.Visited, i),
			formatCount(ticks.Frontier, i),
			formatCount(ticks.Path, i),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatCount(values []float64, i int) string {
	if i >= len(values) {
		return "0"
	}
	return strconv.FormatFloat(values[i], 'f', -1, 64)
}

// List returns every readable recording, oldest first.
func (s *Store) List() ([]RecordingMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordingMetadata{}, nil
		}
		return nil, err
	}

	recs := make([]RecordingMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *meta)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Timestamp.Equal(recs[j].Timestamp) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].Timestamp.Before(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) dir(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.baseDir, id), nil
}

func (s *Store) Load(id string) (*RecordingMetadata, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RecordingMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFixture reads and validates the recorded maze and trace.
func (s *Store) LoadFixture(id string) (*solver.Fixture, error) {
	dir, err := s.dir(id)
	if err != nil {
		return nil, err
	}
	return ReadFixture(filepath.Join(dir, "fixture.yaml"))
}

// ReadFixture reads a fixture file outside any store.
func ReadFixture(path string) (*solver.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx solver.Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := fx.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fx, nil
}

func (s *Store) LoadTicks(id string) (TickCounts, error) {
	dir, err := s.dir(id)
	if err != nil {
		return TickCounts{}, err
	}
	file, err := os.Open(filepath.Join(dir, "ticks.csv"))
	if err != nil {
		return TickCounts{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return TickCounts{}, err
	}

	var ticks TickCounts
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		vals := make([]float64, 3)
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		ticks.Visited = append(ticks.Visited, vals[0])
		ticks.Frontier = append(ticks.Frontier, vals[1])
		ticks.Path = append(ticks.Path, vals[2])
	}

	return ticks, nil
}
