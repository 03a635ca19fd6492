package render

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pathviz/internal/grid"
)

type termCell struct {
	layer  Layer
	color  color.NRGBA
	marker *Style
}

// TerminalSurface draws each cell as two terminal columns.
type TerminalSurface struct {
	layout Layout
	cells  [][]termCell
	cursor *grid.Cell
}

// NewTerminalSurface creates a surface of cols x rows unit cells filled with
// bg.
func NewTerminalSurface(cols, rows int, bg color.NRGBA) *TerminalSurface {
	t := &TerminalSurface{
		layout: Layout{Cols: cols, Rows: rows, CellSize: 1},
		cells:  make([][]termCell, rows),
	}
	for y := range t.cells {
		t.cells[y] = make([]termCell, cols)
		for x := range t.cells[y] {
			t.cells[y][x] = termCell{layer: LayerOpen, color: bg}
		}
	}
	return t
}

func (t *TerminalSurface) Layout() Layout { return t.layout }

func (t *TerminalSurface) FillCellRect(x, y int, s Style) {
	if !t.inBounds(x, y) {
		return
	}
	c := &t.cells[y][x]
	c.layer = s.Layer
	c.color = Blend(s.Color, c.color)
}

// FillCircle marks the cell containing the centre; a terminal cell is too
// coarse to show the disc itself.
func (t *TerminalSurface) FillCircle(cx, cy, radius float64, s Style) {
	cell := t.layout.CellAt(cx, cy)
	if !t.inBounds(cell.X, cell.Y) {
		return
	}
	style := s
	t.cells[cell.Y][cell.X].marker = &style
}

// SetCursor highlights c in String output.
func (t *TerminalSurface) SetCursor(c grid.Cell) {
	t.cursor = &c
}

func (t *TerminalSurface) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && y < len(t.cells) && x < len(t.cells[y])
}

// String renders the surface with lipgloss colours, one line per row.
func (t *TerminalSurface) String() string {
	var b strings.Builder
	for y, row := range t.cells {
		for x, c := range row {
			if t.cursor != nil && *t.cursor == (grid.Cell{X: x, Y: y}) {
				b.WriteString(lipgloss.NewStyle().
					Bold(true).
					Foreground(lipgloss.Color("#ffffff")).
					Background(lipgloss.Color(Hex(c.color))).
					Render("[]"))
				continue
			}
			block := lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c.color)))
			if c.marker == nil {
				b.WriteString(block.Render("██"))
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(Hex(c.marker.Color))).
				Background(lipgloss.Color(Hex(c.color))).
				Render("()"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var layerGlyphs = map[Layer]byte{
	LayerOpen:     '.',
	LayerWall:     '#',
	LayerVisited:  'v',
	LayerFrontier: 'f',
	LayerPath:     '*',
	LayerStart:    'S',
	LayerEnd:      'E',
}

// Text renders the surface as one ASCII glyph per cell, showing the topmost
// layer. It is meant for logs, pipes and tests.
func (t *TerminalSurface) Text() string {
	var b strings.Builder
	for _, row := range t.cells {
		for _, c := range row {
			layer := c.layer
			if c.marker != nil {
				layer = c.marker.Layer
			}
			b.WriteByte(layerGlyphs[layer])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
