package grid

import "fmt"

// State is the content of a single cell.
type State uint8

const (
	Open State = 0
	Wall State = 1
)

func (s State) String() string {
	if s == Wall {
		return "wall"
	}
	return "open"
}

// Grid is a fixed-size matrix of cell states. Dimensions never change after
// construction; a new maze means a new Grid.
type Grid struct {
	rows, cols int
	cells      [][]State
}

// New returns an all-open grid.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([][]State, rows)}
	for y := range g.cells {
		g.cells[y] = make([]State, cols)
	}
	return g, nil
}

// FromMatrix builds a grid from rows of 0/1 values.
func FromMatrix(m [][]int) (*Grid, error) {
	f := make([][]float64, len(m))
	for y, row := range m {
		f[y] = make([]float64, len(row))
		for x, v := range row {
			f[y][x] = float64(v)
		}
	}
	return FromFloatMatrix(f)
}

// FromFloatMatrix builds a grid from rows of 0/1 values that may have been
// decoded as floating point (1.0 is a wall).
func FromFloatMatrix(m [][]float64) (*Grid, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g, err := New(len(m), len(m[0]))
	if err != nil {
		return nil, err
	}
	for y, row := range m {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonRectangular, y, len(row), g.cols)
		}
		for x, v := range row {
			switch v {
			case 0:
				g.cells[y][x] = Open
			case 1:
				g.cells[y][x] = Wall
			default:
				return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrCellValue, v, x, y)
			}
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies in [0,cols) x [0,rows).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// At returns the state of c. Out-of-bounds cells read as walls.
func (g *Grid) At(c Cell) State {
	if !g.InBounds(c) {
		return Wall
	}
	return g.cells[c.Y][c.X]
}

func (g *Grid) IsWall(c Cell) bool { return g.At(c) == Wall }

// IsOpen reports whether c is in bounds and not a wall.
func (g *Grid) IsOpen(c Cell) bool { return g.InBounds(c) && g.cells[c.Y][c.X] == Open }

// Set writes s into c and reports whether the grid changed. Out-of-bounds
// writes and writes of the current value change nothing.
func (g *Grid) Set(c Cell, s State) bool {
	if !g.InBounds(c) || g.cells[c.Y][c.X] == s {
		return false
	}
	g.cells[c.Y][c.X] = s
	return true
}

// Count returns the number of cells in state s.
func (g *Grid) Count(s State) int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v == s {
				n++
			}
		}
	}
	return n
}

// Matrix returns a copy of the grid as rows of 0/1 values, the solver wire form.
func (g *Grid) Matrix() [][]int {
	m := make([][]int, g.rows)
	for y, row := range g.cells {
		m[y] = make([]int, g.cols)
		for x, v := range row {
			m[y][x] = int(v)
		}
	}
	return m
}

func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, cells: make([][]State, g.rows)}
	for y, row := range g.cells {
		c.cells[y] = make([]State, g.cols)
		copy(c.cells[y], row)
	}
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}
