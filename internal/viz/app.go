package viz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/editor"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/metrics"
	"github.com/san-kum/pathviz/internal/render"
	"github.com/san-kum/pathviz/internal/solver"
	"github.com/san-kum/pathviz/internal/trace"
)

// Board position inside View: a two-line header, a status line, and a two
// column indent.
const (
	boardTop  = 3
	boardLeft = 2
	speedStep = 5
)

type mazeMsg struct {
	maze *solver.Maze
	err  error
}

type searchMsg struct {
	req   editor.SearchRequest
	trace trace.Trace
	err   error
}

type Options struct {
	Client    editor.Solver
	Theme     string
	Algorithm solver.Algorithm
	Size      int
	Speed     int
	Logger    *slog.Logger
	Hooks     []trace.Hooks
}

// App is the interactive maze editor.
type App struct {
	ctx    context.Context
	client editor.Solver
	logger *slog.Logger
	sched  *teaScheduler
	editor *editor.Model

	series     *metrics.Series
	coverage   *metrics.Coverage
	efficiency *metrics.Efficiency

	theme    Theme
	styles   styles
	tool     editor.Tool
	algo     solver.Algorithm
	size     int
	speed    int
	cursor   grid.Cell
	painting bool
	busy     string
	message  string
	failed   bool
	width    int
	showHelp bool
	quitting bool
}

func NewApp(ctx context.Context, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Algorithm == "" {
		opts.Algorithm = solver.Prim
	}
	if opts.Size == 0 {
		opts.Size = config.DefaultSize
	}
	if opts.Speed == 0 {
		opts.Speed = trace.DefaultSpeed
	}

	a := &App{
		ctx:        ctx,
		client:     opts.Client,
		logger:     opts.Logger,
		sched:      newTeaScheduler(),
		series:     metrics.NewSeries(),
		coverage:   metrics.NewCoverage(nil),
		efficiency: metrics.NewEfficiency(),
		theme:      GetTheme(opts.Theme),
		tool:       editor.ToolWall,
		algo:       opts.Algorithm,
		size:       config.ClampSize(opts.Size),
		speed:      config.ClampSpeed(opts.Speed),
	}
	a.styles = newStyles(a.theme)

	playerOpts := []trace.Option{trace.WithHooks(metrics.Attach(a.series, a.coverage, a.efficiency))}
	for _, h := range opts.Hooks {
		playerOpts = append(playerOpts, trace.WithHooks(h))
	}
	a.editor = editor.New(opts.Client, a.sched,
		editor.WithLogger(opts.Logger),
		editor.WithPlayerOptions(playerOpts...),
	)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.generate()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case tea.MouseMsg:
		a.handleMouse(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
	case tickMsg:
		a.sched.Fire(msg.id)
	case mazeMsg:
		a.applyMaze(msg)
	case searchMsg:
		a.applySearch(msg)
	}

	if a.quitting {
		return a, tea.Quit
	}
	return a, tea.Batch(cmd, a.sched.Drain())
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		a.quitting = true
	case "?":
		a.showHelp = !a.showHelp
	case "up", "k":
		a.moveCursor(0, -1)
	case "down", "j":
		a.moveCursor(0, 1)
	case "left", "h":
		a.moveCursor(-1, 0)
	case "right", "l":
		a.moveCursor(1, 0)
	case " ", "enter":
		a.apply(a.cursor)
	case "w":
		a.tool = editor.ToolWall
	case "x":
		a.tool = editor.ToolErase
	case "s":
		a.tool = editor.ToolStart
	case "e":
		a.tool = editor.ToolEnd
	case "r":
		return a.search()
	case "g":
		return a.generate()
	case "a":
		a.algo = a.algo.Next()
	case "+", "=":
		a.speed = config.ClampSpeed(a.speed + speedStep)
	case "-", "_":
		a.speed = config.ClampSpeed(a.speed - speedStep)
	case "]":
		a.size = config.ClampSize(a.size + 1)
	case "[":
		a.size = config.ClampSize(a.size - 1)
	case "c":
		a.editor.Cancel()
	case "t":
		a.theme = NextTheme(a.theme.Name)
		a.styles = newStyles(a.theme)
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	if a.showHelp || a.editor.Grid() == nil {
		return
	}
	cell, ok := a.pointerCell(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return
		}
		a.painting = a.tool == editor.ToolWall || a.tool == editor.ToolErase
		a.cursor = cell
		a.apply(cell)
	case tea.MouseActionMotion:
		if a.painting && ok {
			a.cursor = cell
			a.apply(cell)
		}
	case tea.MouseActionRelease:
		a.painting = false
	}
}

// pointerCell maps a terminal position to a cell. Each cell is two columns
// wide and one row high.
func (a *App) pointerCell(x, y int) (grid.Cell, bool) {
	l := render.Layout{Cols: a.editor.Cols(), Rows: a.editor.Rows(), CellSize: 1}
	return l.PointerToCell(
		float64(x-boardLeft), float64(y-boardTop),
		float64(2*l.Cols), float64(l.Rows),
	)
}

func (a *App) moveCursor(dx, dy int) {
	next := grid.Cell{X: a.cursor.X + dx, Y: a.cursor.Y + dy}
	if g := a.editor.Grid(); g != nil && g.InBounds(next) {
		a.cursor = next
	}
}

func (a *App) apply(c grid.Cell) {
	if a.editor.Apply(a.tool, c.X, c.Y) {
		a.logger.Debug("edit", "tool", a.tool, "cell", c)
		a.coverage.SetGrid(a.editor.Grid())
		a.clearMessage()
	}
}

func (a *App) generate() tea.Cmd {
	if a.client == nil {
		a.fail(errors.New("no solver configured"))
		return nil
	}
	a.busy = fmt.Sprintf("generating %dx%d %s maze", a.size, a.size, a.algo)
	a.clearMessage()

	ctx, client, algo, size := a.ctx, a.client, a.algo, a.size
	return func() tea.Msg {
		mz, err := client.Generate(ctx, algo, size, size)
		return mazeMsg{maze: mz, err: err}
	}
}

func (a *App) search() tea.Cmd {
	if a.client == nil {
		a.fail(errors.New("no solver configured"))
		return nil
	}
	req, err := a.editor.BeginSearch()
	if err != nil {
		a.fail(err)
		return nil
	}
	a.busy = "searching"
	a.clearMessage()

	ctx, client := a.ctx, a.client
	return func() tea.Msg {
		tr, err := client.FindPath(ctx, req.Path)
		return searchMsg{req: req, trace: tr, err: err}
	}
}

func (a *App) applyMaze(msg mazeMsg) {
	a.busy = ""
	if msg.err != nil {
		a.fail(fmt.Errorf("generate: %w", msg.err))
		return
	}
	if err := a.editor.ReplaceMaze(msg.maze); err != nil {
		a.fail(err)
		return
	}
	a.coverage.SetGrid(a.editor.Grid())
	if !a.editor.Grid().InBounds(a.cursor) {
		a.cursor = grid.Cell{}
	}
}

func (a *App) applySearch(msg searchMsg) {
	// A newer search is still in flight; its result decides the status.
	if msg.req.Search != a.editor.Search() {
		a.logger.Debug("dropping superseded search", "search", msg.req.Search, "latest", a.editor.Search())
		return
	}
	a.busy = ""
	if msg.err != nil {
		a.fail(fmt.Errorf("search: %w", msg.err))
		return
	}
	err := a.editor.Play(msg.req, msg.trace, a.speed)
	if errors.Is(err, editor.ErrStaleSearch) {
		a.message = "grid changed during search; press r to search again"
		return
	}
	if err != nil {
		a.fail(err)
	}
}

func (a *App) fail(err error) {
	a.logger.Error("operation failed", "error", err)
	a.message = err.Error()
	a.failed = true
}

func (a *App) clearMessage() {
	a.message = ""
	a.failed = false
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	title := GradientText("PATHVIZ", a.theme.Primary, a.theme.Secondary)
	b.WriteString(a.styles.header.Render(title+"  "+lipgloss.NewStyle().Foreground(a.theme.Muted).Render("maze search visualizer")) + "\n")
	b.WriteString(a.statusLine() + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.boardView(), " ", a.panelView()))

	out := b.String()
	if a.showHelp {
		out = helpText + "\n\n" + out
	}
	if a.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(a.width).Render(out)
	}
	return out
}

func (a *App) statusLine() string {
	switch {
	case a.failed:
		return a.styles.statusError.Render("error: " + a.message)
	case a.busy != "":
		return a.styles.statusBusy.Render(a.busy + "...")
	case a.message != "":
		return a.styles.statusBusy.Render(a.message)
	}

	st := a.editor.Playback()
	switch st.Phase {
	case trace.Playing:
		p := a.editor.Player()
		return a.styles.statusBusy.Render(fmt.Sprintf("playing tick %d/%d", p.Ticks(), p.TotalTicks()))
	case trace.Done:
		if len(st.Path) == 0 {
			return a.styles.statusError.Render("no path to the end")
		}
		return a.styles.statusDone.Render(fmt.Sprintf("path found: %d cells", len(st.Path)))
	}
	if a.editor.Grid() == nil {
		return a.styles.statusIdle.Render("no maze")
	}
	return a.styles.statusIdle.Render("ready")
}

func (a *App) boardView() string {
	g := a.editor.Grid()
	if g == nil {
		return strings.Repeat(" ", boardLeft) + a.styles.keyHint.Render("(press g to generate a maze)")
	}

	surf := render.NewTerminalSurface(g.Cols(), g.Rows(), a.theme.Palette.Background)
	render.NewPainter(a.theme.Palette).Paint(surf, g, a.editor.Start(), a.editor.End(), a.editor.Playback())
	surf.SetCursor(a.cursor)

	lines := strings.Split(strings.TrimRight(surf.String(), "\n"), "\n")
	indent := strings.Repeat(" ", boardLeft)
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (a *App) panelView() string {
	st := a.editor.Playback()
	p := a.editor.Player()
	row := func(label, value string) string {
		return a.styles.label.Render(label) + a.styles.value.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(row("algorithm", string(a.algo)))
	size := fmt.Sprintf("%dx%d", a.editor.Rows(), a.editor.Cols())
	if a.size != a.editor.Rows() || a.size != a.editor.Cols() {
		size += fmt.Sprintf(" (next %dx%d)", a.size, a.size)
	}
	s.WriteString(row("size", size))
	s.WriteString(row("speed", fmt.Sprintf("%d (%v)", a.speed, trace.IntervalForSpeed(a.speed))))
	s.WriteString(a.styles.label.Render("tool") + a.styles.active.Render(a.tool.String()) + "\n")
	s.WriteString(row("theme", a.theme.Name))
	s.WriteString("\n")
	s.WriteString(row("phase", st.Phase.String()))
	s.WriteString(row("visited", fmt.Sprint(st.Visited.Len())))
	s.WriteString(row("frontier", fmt.Sprint(st.Frontier.Len())))
	s.WriteString(row("path", fmt.Sprint(len(st.Path))))

	progress := 0.0
	if total := p.TotalTicks(); total > 0 {
		progress = float64(p.Ticks()) / float64(total)
	}
	s.WriteString(a.styles.label.Render("progress") + ProgressBar(progress, 16, a.theme) + "\n")
	s.WriteString(row("coverage", fmt.Sprintf("%.0f%%", a.coverage.Value()*100)))
	s.WriteString(row("efficiency", fmt.Sprintf("%.2f", a.efficiency.Value())))

	if visited := a.series.Visited(); len(visited) > 1 {
		chart := asciigraph.Plot(visited, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("visited per tick"))
		s.WriteString("\n" + a.styles.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + a.styles.keyHint.Render("r run  g generate  a algo  wxse tools\n+/- speed  [ ] size  t theme  ? help  q quit"))
	return a.styles.panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows/HJKL - Move cursor           ║
║  Space       - Apply tool at cursor  ║
║  W X S E     - Wall/erase/start/end  ║
║  Mouse       - Paint with the tool   ║
║  R           - Run the search        ║
║  G           - Generate a new maze   ║
║  A           - Toggle algorithm      ║
║  + / -       - Playback speed        ║
║  [ / ]       - Next maze size        ║
║  C           - Cancel playback       ║
║  T           - Cycle themes          ║
║  ?           - Toggle this help      ║
║  Q           - Quit                  ║
╚══════════════════════════════════════╝`

// Run starts the editor and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	app := NewApp(ctx, opts)
	_, err := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
