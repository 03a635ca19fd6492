package solver

import (
	"fmt"
	"strings"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/trace"
)

// Algorithm names a maze generation algorithm understood by the service.
type Algorithm string

const (
	Prim    Algorithm = "prim"
	Kruskal Algorithm = "kruskal"
)

// Algorithms lists the supported algorithms in selector order.
func Algorithms() []Algorithm {
	return []Algorithm{Prim, Kruskal}
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case Prim, Kruskal:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Next returns the algorithm after a in selector order.
func (a Algorithm) Next() Algorithm {
	all := Algorithms()
	for i, x := range all {
		if x == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Maze is a generated grid with its start and end markers.
type Maze struct {
	Grid  *grid.Grid
	Start grid.Cell
	End   grid.Cell
}

// PathRequest is the body of a find-path call.
type PathRequest struct {
	Maze  [][]int   `json:"maze"`
	Start grid.Cell `json:"start"`
	End   grid.Cell `json:"end"`
}

type generateResponse struct {
	Maze  [][]float64 `json:"maze"`
	Start *grid.Cell  `json:"start"`
	End   *grid.Cell  `json:"end"`
}

// pathResponse mirrors the service: path is null when the end is unreachable.
type pathResponse struct {
	Path     []grid.Cell `json:"path"`
	Visited  []grid.Cell `json:"visited"`
	Frontier []grid.Cell `json:"frontier"`
}

type pingResponse struct {
	Message string `json:"message"`
}

func (r *generateResponse) maze() (*Maze, error) {
	g, err := grid.FromFloatMatrix(r.Maze)
	if err != nil {
		return nil, err
	}
	if r.Start == nil || r.End == nil {
		return nil, fmt.Errorf("missing start or end marker")
	}
	for name, c := range map[string]grid.Cell{"start": *r.Start, "end": *r.End} {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%s %v: %w", name, c, grid.ErrOutOfBounds)
		}
		if g.IsWall(c) {
			return nil, fmt.Errorf("%s %v: %w", name, c, grid.ErrWallCell)
		}
	}
	return &Maze{Grid: g, Start: *r.Start, End: *r.End}, nil
}

func (r *pathResponse) trace(rows, cols int) (trace.Trace, error) {
	tr := trace.Trace{Visited: r.Visited, Frontier: r.Frontier, Path: r.Path}
	for name, cells := range map[string][]grid.Cell{"visited": tr.Visited, "frontier": tr.Frontier, "path": tr.Path} {
		for _, c := range cells {
			if c.X < 0 || c.X >= cols || c.Y < 0 || c.Y >= rows {
				return trace.Trace{}, fmt.Errorf("%s cell %v: %w", name, c, grid.ErrOutOfBounds)
			}
		}
	}
	return tr, nil
}
