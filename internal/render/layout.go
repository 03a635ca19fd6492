package render

import (
	"math"

	"github.com/san-kum/pathviz/internal/grid"
)

// Layout places a Cols x Rows grid on a surface with square cells.
type Layout struct {
	Cols, Rows int
	CellSize   float64
}

// NewLayout fits the grid into a width x height surface. The cell size is the
// largest square that fits both dimensions.
func NewLayout(width, height float64, cols, rows int) Layout {
	l := Layout{Cols: cols, Rows: rows}
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return l
	}
	l.CellSize = math.Min(width/float64(cols), height/float64(rows))
	return l
}

// Width is the backing width actually covered by cells.
func (l Layout) Width() float64 { return float64(l.Cols) * l.CellSize }

// Height is the backing height actually covered by cells.
func (l Layout) Height() float64 { return float64(l.Rows) * l.CellSize }

// PointerToCell maps a pointer position, measured on a client area of
// clientW x clientH, to the cell under it. The client area may be scaled
// relative to the backing surface.
func (l Layout) PointerToCell(px, py, clientW, clientH float64) (grid.Cell, bool) {
	if l.CellSize <= 0 || clientW <= 0 || clientH <= 0 {
		return grid.Cell{}, false
	}
	bx := px * l.Width() / clientW
	by := py * l.Height() / clientH
	x := int(math.Floor(bx / l.CellSize))
	y := int(math.Floor(by / l.CellSize))
	if x < 0 || x >= l.Cols || y < 0 || y >= l.Rows {
		return grid.Cell{}, false
	}
	return grid.Cell{X: x, Y: y}, true
}

// CellOrigin returns the top-left corner of c.
func (l Layout) CellOrigin(c grid.Cell) (x, y float64) {
	return float64(c.X) * l.CellSize, float64(c.Y) * l.CellSize
}

func (l Layout) CellCenter(c grid.Cell) (x, y float64) {
	ox, oy := l.CellOrigin(c)
	return ox + l.CellSize/2, oy + l.CellSize/2
}

// MarkerRadius is the radius of the start and end discs: two pixels inside the
// cell, or half a cell when cells are too small for the inset.
func (l Layout) MarkerRadius() float64 {
	r := l.CellSize/2 - 2
	if r <= 0 {
		r = l.CellSize / 2
	}
	return r
}

// CellAt maps a pixel position on the backing surface to a cell, without
// bounds checking.
func (l Layout) CellAt(x, y float64) grid.Cell {
	if l.CellSize <= 0 {
		return grid.Cell{}
	}
	return grid.Cell{
		X: int(math.Floor(x / l.CellSize)),
		Y: int(math.Floor(y / l.CellSize)),
	}
}
