package config

import (
	"fmt"
	"sort"
)

// Preset overrides the maze and playback sections of a config.
type Preset struct {
	Rows, Cols int
	Algorithm  string
	Speed      int
}

var Presets = map[string]Preset{
	"small":  {Rows: 8, Cols: 8, Algorithm: "prim", Speed: 70},
	"medium": {Rows: 15, Cols: 15, Algorithm: "prim", Speed: 81},
	"large":  {Rows: 25, Cols: 25, Algorithm: "kruskal", Speed: 95},
	"slowmo": {Rows: 12, Cols: 12, Algorithm: "kruskal", Speed: 1},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overlays the named preset onto c.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	c.Maze.Rows = p.Rows
	c.Maze.Cols = p.Cols
	c.Maze.Algorithm = p.Algorithm
	c.Playback.Speed = p.Speed
	return nil
}
