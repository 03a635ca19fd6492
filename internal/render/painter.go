package render

import (
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/trace"
)

// Surface is a drawing target. Cell fills use grid coordinates; circles use
// pixel coordinates on the surface's layout.
type Surface interface {
	Layout() Layout
	FillCellRect(x, y int, s Style)
	FillCircle(cx, cy, radius float64, s Style)
}

// Outliner is implemented by surfaces that can draw cell borders.
type Outliner interface {
	StrokeCellRect(x, y int, s Style)
}

type Painter struct {
	Palette Palette
}

func NewPainter(p Palette) *Painter {
	return &Painter{Palette: p}
}

// Paint draws one frame. st may be nil for a maze without a search.
func (p *Painter) Paint(s Surface, g *grid.Grid, start, end grid.Cell, st *trace.State) {
	if g == nil {
		return
	}

	open, wall := p.Palette.Style(LayerOpen), p.Palette.Style(LayerWall)
	outliner, outlined := s.(Outliner)
	border := p.Palette.Style(LayerBorder)
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			if g.IsWall(grid.Cell{X: x, Y: y}) {
				s.FillCellRect(x, y, wall)
			} else {
				s.FillCellRect(x, y, open)
			}
			if outlined {
				outliner.StrokeCellRect(x, y, border)
			}
		}
	}

	if st != nil {
		// Sets are unordered; sort so that every surface output is stable.
		visited := p.Palette.Style(LayerVisited)
		for _, c := range st.Visited.Sorted() {
			s.FillCellRect(c.X, c.Y, visited)
		}
		frontier := p.Palette.Style(LayerFrontier)
		for _, c := range st.Frontier.Sorted() {
			s.FillCellRect(c.X, c.Y, frontier)
		}
		path := p.Palette.Style(LayerPath)
		for _, c := range st.Path {
			s.FillCellRect(c.X, c.Y, path)
		}
	}

	l := s.Layout()
	r := l.MarkerRadius()
	cx, cy := l.CellCenter(start)
	s.FillCircle(cx, cy, r, p.Palette.Style(LayerStart))
	cx, cy = l.CellCenter(end)
	s.FillCircle(cx, cy, r, p.Palette.Style(LayerEnd))
}
