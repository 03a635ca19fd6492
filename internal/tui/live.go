package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/render"
	"github.com/san-kum/pathviz/internal/trace"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Board supplies what a frame shows besides the playback state.
type Board interface {
	Grid() *grid.Grid
	Start() grid.Cell
	End() grid.Cell
}

// LiveRenderer prints playback frames to a terminal without taking it over.
// Frames closer together than the frame rate allows are dropped. Register
// Hooks with the player so the finished board is always printed.
type LiveRenderer struct {
	out       io.Writer
	board     Board
	painter   *render.Painter
	frameRate int
	plain     bool
	title     string
	now       func() time.Time
	lastFrame time.Time
	frames    int
}

type LiveOption func(*LiveRenderer)

// WithPlainText prints ASCII frames without colour or screen control codes.
func WithPlainText() LiveOption {
	return func(r *LiveRenderer) { r.plain = true }
}

func WithTitle(title string) LiveOption {
	return func(r *LiveRenderer) { r.title = title }
}

func withClock(now func() time.Time) LiveOption {
	return func(r *LiveRenderer) { r.now = now }
}

func NewLiveRenderer(out io.Writer, board Board, p render.Palette, frameRate int, opts ...LiveOption) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	r := &LiveRenderer{
		out:       out,
		board:     board,
		painter:   render.NewPainter(p),
		frameRate: frameRate,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements trace.Renderer.
func (r *LiveRenderer) Render(st *trace.State) {
	if r.frames > 0 && r.now().Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = r.now()
	r.frames++
	r.draw(st)
}

// Hooks prints the final frame when a playback finishes.
func (r *LiveRenderer) Hooks() trace.Hooks {
	return trace.Hooks{
		OnDone: func(st *trace.State, _ int) {
			r.lastFrame = r.now()
			r.frames++
			r.draw(st)
		},
	}
}

func (r *LiveRenderer) Frames() int { return r.frames }

// Frame returns the board for st as the renderer would print it.
func (r *LiveRenderer) Frame(st *trace.State) string {
	g := r.board.Grid()
	if g == nil {
		return ""
	}
	surf := render.NewTerminalSurface(g.Cols(), g.Rows(), r.painter.Palette.Background)
	r.painter.Paint(surf, g, r.board.Start(), r.board.End(), st)
	if r.plain {
		return surf.Text()
	}
	return surf.String()
}

func (r *LiveRenderer) draw(st *trace.State) {
	var b strings.Builder
	if !r.plain {
		b.WriteString(clearScreen)
	}
	if r.title != "" {
		fmt.Fprintf(&b, "  %s  ", r.title)
	} else {
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%s  visited=%d frontier=%d path=%d\n",
		st.Phase, st.Visited.Len(), st.Frontier.Len(), len(st.Path))

	for _, line := range strings.Split(strings.TrimRight(r.Frame(st), "\n"), "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if r.plain {
		b.WriteString("\n")
	}
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() {
	if !r.plain {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if !r.plain {
		fmt.Fprint(r.out, showCursor)
	}
}
