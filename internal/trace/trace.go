package trace

import "github.com/san-kum/pathviz/internal/grid"

// Trace is the visitation history of one search request.
type Trace struct {
	Visited  []grid.Cell `json:"visited" yaml:"visited"`
	Frontier []grid.Cell `json:"frontier" yaml:"frontier"`
	Path     []grid.Cell `json:"path" yaml:"path"`
}

// Empty reports whether all three sequences are empty.
func (t Trace) Empty() bool {
	return len(t.Visited) == 0 && len(t.Frontier) == 0 && len(t.Path) == 0
}

// Found reports whether the search reached its goal.
func (t Trace) Found() bool { return len(t.Path) > 0 }

// Ticks returns how many ticks a full playback takes, including the final
// tick that detects completion. The tick that exhausts the visited and
// frontier sequences also reveals the first path cell.
func (t Trace) Ticks() int {
	search := max(len(t.Visited), len(t.Frontier))
	n := search + len(t.Path) + 1
	if search > 0 && len(t.Path) > 0 {
		n--
	}
	return n
}

// Clone returns a deep copy so a player never aliases caller slices.
func (t Trace) Clone() Trace {
	return Trace{
		Visited:  append([]grid.Cell(nil), t.Visited...),
		Frontier: append([]grid.Cell(nil), t.Frontier...),
		Path:     append([]grid.Cell(nil), t.Path...),
	}
}
