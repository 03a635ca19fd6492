package metrics

import (
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/trace"
)

// Coverage is the fraction of open cells the search has touched, visited or
// queued.
type Coverage struct {
	name     string
	open     int
	revealed int
}

func NewCoverage(g *grid.Grid) *Coverage {
	c := &Coverage{name: "coverage"}
	c.SetGrid(g)
	return c
}

// SetGrid recounts the open cells after the maze changed.
func (c *Coverage) SetGrid(g *grid.Grid) {
	c.open = 0
	if g != nil {
		c.open = g.Count(grid.Open)
	}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(st *trace.State) {
	n := st.Visited.Len()
	for cell := range st.Frontier {
		if !st.Visited.Has(cell) {
			n++
		}
	}
	c.revealed = n
}

func (c *Coverage) Value() float64 {
	if c.open == 0 {
		return 0
	}
	return float64(c.revealed) / float64(c.open)
}

func (c *Coverage) Reset() {
	c.revealed = 0
}
