package metrics

import "github.com/san-kum/pathviz/internal/trace"

// Efficiency is path length over visited cells: 1 means the search expanded
// nothing off the final path.
type Efficiency struct {
	name    string
	path    int
	visited int
}

func NewEfficiency() *Efficiency {
	return &Efficiency{
		name: "efficiency",
	}
}

func (e *Efficiency) Name() string {
	return e.name
}

func (e *Efficiency) Observe(st *trace.State) {
	e.path = len(st.Path)
	e.visited = st.Visited.Len()
}

func (e *Efficiency) Value() float64 {
	if e.visited == 0 {
		return 0
	}
	return float64(e.path) / float64(e.visited)
}

func (e *Efficiency) Reset() {
	e.path = 0
	e.visited = 0
}
