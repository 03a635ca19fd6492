package trace

import (
	"fmt"

	"github.com/san-kum/pathviz/internal/grid"
)

// Phase is the player's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Playing
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is the revealed portion of a trace.
type State struct {
	Phase          Phase
	VisitedCursor  int
	FrontierCursor int
	PathCursor     int
	Visited        grid.CellSet
	Frontier       grid.CellSet
	Path           []grid.Cell
}

func newState() State {
	return State{
		Visited:  grid.NewCellSet(),
		Frontier: grid.NewCellSet(),
	}
}

// Clone returns a copy that shares nothing with s.
func (s *State) Clone() State {
	c := State{
		Phase:          s.Phase,
		VisitedCursor:  s.VisitedCursor,
		FrontierCursor: s.FrontierCursor,
		PathCursor:     s.PathCursor,
		Visited:        make(grid.CellSet, len(s.Visited)),
		Frontier:       make(grid.CellSet, len(s.Frontier)),
		Path:           append([]grid.Cell(nil), s.Path...),
	}
	for cell := range s.Visited {
		c.Visited.Add(cell)
	}
	for cell := range s.Frontier {
		c.Frontier.Add(cell)
	}
	return c
}

// InPath reports whether c has been revealed as part of the path.
func (s *State) InPath(c grid.Cell) bool {
	for _, p := range s.Path {
		if p == c {
			return true
		}
	}
	return false
}

// Empty reports whether nothing has been revealed.
func (s *State) Empty() bool {
	return s.Visited.Len() == 0 && s.Frontier.Len() == 0 && len(s.Path) == 0
}
