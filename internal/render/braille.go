package render

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const dotsPerCell = 2

// Canvas is a grid of braille characters addressed in dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set raises the dot at (x, y). The canvas is (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// BrailleSurface shows walls, the path and the markers as raised dots, two by
// two dots per cell. Translucent layers leave the dots as they are.
type BrailleSurface struct {
	layout Layout
	canvas *Canvas
}

func NewBrailleSurface(cols, rows int) *BrailleSurface {
	w := (cols*dotsPerCell + 1) / 2
	h := (rows*dotsPerCell + 3) / 4
	return &BrailleSurface{
		layout: Layout{Cols: cols, Rows: rows, CellSize: dotsPerCell},
		canvas: NewCanvas(w, h),
	}
}

func (b *BrailleSurface) Layout() Layout { return b.layout }

func (b *BrailleSurface) FillCellRect(x, y int, s Style) {
	if x < 0 || y < 0 || x >= b.layout.Cols || y >= b.layout.Rows {
		return
	}
	var raise bool
	switch s.Layer {
	case LayerWall, LayerPath:
		raise = true
	case LayerOpen:
		raise = false
	default:
		return
	}
	for dy := 0; dy < dotsPerCell; dy++ {
		for dx := 0; dx < dotsPerCell; dx++ {
			px, py := x*dotsPerCell+dx, y*dotsPerCell+dy
			if raise {
				b.canvas.Set(px, py)
			} else {
				b.canvas.Unset(px, py)
			}
		}
	}
}

// FillCircle raises every dot whose centre lies inside the disc.
func (b *BrailleSurface) FillCircle(cx, cy, radius float64, s Style) {
	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			if math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy) <= radius {
				b.canvas.Set(px, py)
			}
		}
	}
}

func (b *BrailleSurface) String() string { return b.canvas.String() }
