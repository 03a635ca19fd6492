package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/trace"
)

// scenario is the 3x3 maze with a walled centre after a finished search.
func scenario(t *testing.T) (*grid.Grid, grid.Cell, grid.Cell, *trace.State) {
	t.Helper()
	g, err := grid.FromMatrix([][]int{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	st := &trace.State{
		Phase:    trace.Done,
		Visited:  grid.NewCellSet(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0}),
		Frontier: grid.NewCellSet(grid.Cell{X: 0, Y: 1}),
		Path:     []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
	return g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 2}, st
}

// recorder is a Surface that logs every call.
type recorder struct {
	layout Layout
	calls  []string
}

func (r *recorder) Layout() Layout { return r.layout }

func (r *recorder) FillCellRect(x, y int, s Style) {
	r.calls = append(r.calls, s.Layer.String())
}

func (r *recorder) FillCircle(cx, cy, radius float64, s Style) {
	r.calls = append(r.calls, s.Layer.String())
}

func TestPaintOrder(t *testing.T) {
	g, start, end, st := scenario(t)
	rec := &recorder{layout: Layout{Cols: 3, Rows: 3, CellSize: 10}}
	NewPainter(PaletteCyberpunk).Paint(rec, g, start, end, st)

	want := []string{
		"open", "open", "open",
		"open", "wall", "open",
		"open", "open", "open",
		"visited", "visited",
		"frontier",
		"path", "path",
		"start", "end",
	}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v\nwant    %v", rec.calls, want)
	}
}

func TestPaintNilGrid(t *testing.T) {
	rec := &recorder{layout: Layout{Cols: 3, Rows: 3, CellSize: 10}}
	NewPainter(PaletteCyberpunk).Paint(rec, nil, grid.Cell{}, grid.Cell{}, nil)
	if len(rec.calls) != 0 {
		t.Errorf("painted %d calls for a nil grid", len(rec.calls))
	}
}

func TestTerminalSurfaceText(t *testing.T) {
	g, start, end, st := scenario(t)

	tests := []struct {
		name  string
		state *trace.State
		want  string
	}{
		{"maze only", nil, "S..\n.#.\n..E\n"},
		{"finished search", st, "S*.\nf#.\n..E\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surf := NewTerminalSurface(3, 3, PaletteCyberpunk.Background)
			NewPainter(PaletteCyberpunk).Paint(surf, g, start, end, tt.state)
			if got := surf.Text(); got != tt.want {
				t.Errorf("Text() =\n%s\nwant\n%s", got, tt.want)
			}
			if lines := strings.Count(surf.String(), "\n"); lines != 3 {
				t.Errorf("String() has %d lines, want 3", lines)
			}
		})
	}
}

func TestSVGSurface(t *testing.T) {
	g, start, end, st := scenario(t)
	surf := NewSVGSurface(NewLayout(60, 60, 3, 3), PaletteCyberpunk.Background)
	NewPainter(PaletteCyberpunk).Paint(surf, g, start, end, st)

	out := surf.String()
	checks := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="60" height="60"`,
		`fill="#00ff9d"`,
		`fill-opacity="0.18"`,
		`stroke="#333333"`,
		"</svg>",
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("svg missing %q", c)
		}
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("svg has %d circles, want 2", n)
	}

	var buf bytes.Buffer
	if _, err := surf.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != out {
		t.Error("WriteTo differs from String")
	}
}

func TestImageSurface(t *testing.T) {
	g, start, end, st := scenario(t)
	surf := NewImageSurface(NewLayout(60, 60, 3, 3), PaletteCyberpunk.Background)
	NewPainter(PaletteCyberpunk).Paint(surf, g, start, end, st)

	img := surf.Image()
	at := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}

	if got := at(30, 30); got != PaletteCyberpunk.Wall {
		t.Errorf("wall pixel = %v, want %v", got, PaletteCyberpunk.Wall)
	}
	if got := at(30, 10); got != PaletteCyberpunk.Path {
		t.Errorf("path pixel = %v, want %v", got, PaletteCyberpunk.Path)
	}
	if got := at(10, 10); got != PaletteCyberpunk.Start {
		t.Errorf("start pixel = %v, want %v", got, PaletteCyberpunk.Start)
	}
	if got := at(50, 50); got != PaletteCyberpunk.End {
		t.Errorf("end pixel = %v, want %v", got, PaletteCyberpunk.End)
	}
	if got := at(10, 30); got == PaletteCyberpunk.Open {
		t.Error("frontier pixel was not tinted")
	}

	var buf bytes.Buffer
	if err := surf.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Errorf("png bounds = %v", b)
	}
}

func TestBrailleSurface(t *testing.T) {
	g, err := grid.New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	surf := NewBrailleSurface(2, 2)
	NewPainter(PaletteCyberpunk).Paint(surf, g, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 1}, nil)

	want := string([]rune{0x281b, 0x28e4}) + "\n"
	if got := surf.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(5, 5)
	c.Set(-1, 0)
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("after Set = %#x", c.Grid[0][0])
	}
	c.Unset(0, 0)
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2880 {
		t.Errorf("after Unset = %#x", c.Grid[0][0])
	}
}
