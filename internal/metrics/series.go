package metrics

import "github.com/san-kum/pathviz/internal/trace"

// Series records the revealed counts after every tick.
type Series struct {
	name     string
	visited  []float64
	frontier []float64
	path     []float64
}

func NewSeries() *Series {
	return &Series{
		name: "ticks",
	}
}

func (s *Series) Name() string {
	return s.name
}

func (s *Series) Observe(st *trace.State) {
	s.visited = append(s.visited, float64(st.Visited.Len()))
	s.frontier = append(s.frontier, float64(st.Frontier.Len()))
	s.path = append(s.path, float64(len(st.Path)))
}

// Value is the number of ticks observed.
func (s *Series) Value() float64 {
	return float64(len(s.visited))
}

func (s *Series) Reset() {
	s.visited = nil
	s.frontier = nil
	s.path = nil
}

func (s *Series) Visited() []float64  { return s.visited }
func (s *Series) Frontier() []float64 { return s.frontier }
func (s *Series) Path() []float64     { return s.path }
