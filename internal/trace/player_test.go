package trace_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/sched"
	"github.com/san-kum/pathviz/internal/trace"
)

// line returns n distinct cells along row y.
func line(y, n int) []grid.Cell {
	cells := make([]grid.Cell, n)
	for i := range cells {
		cells[i] = grid.Cell{X: i, Y: y}
	}
	return cells
}

var _ = Describe("Player", func() {
	var (
		clock    *sched.Manual
		player   *trace.Player
		renders  int
		onRender func(st *trace.State)
	)

	BeforeEach(func() {
		clock = sched.NewManual()
		renders = 0
		onRender = nil
		player = trace.NewPlayer(clock, trace.WithRenderer(trace.RendererFunc(func(st *trace.State) {
			renders++
			if onRender != nil {
				onRender(st)
			}
		})))
	})

	It("starts idle with nothing revealed", func() {
		Expect(player.Phase()).To(Equal(trace.Idle))
		Expect(player.State().Empty()).To(BeTrue())
	})

	Context("with the 3x3 scenario trace", func() {
		var tr trace.Trace

		BeforeEach(func() {
			tr = trace.Trace{
				Visited:  []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
				Frontier: []grid.Cell{{X: 0, Y: 1}},
				Path:     []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}},
			}
		})

		It("reveals everything and reaches Done", func() {
			Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
			Expect(player.Phase()).To(Equal(trace.Playing))
			Expect(player.TotalTicks()).To(Equal(4))

			clock.RunUntilIdle(0)

			st := player.State()
			Expect(st.Phase).To(Equal(trace.Done))
			Expect(st.Visited).To(Equal(grid.NewCellSet(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0})))
			Expect(st.Frontier).To(Equal(grid.NewCellSet(grid.Cell{X: 0, Y: 1})))
			Expect(st.Path).To(Equal([]grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}))
			Expect(player.Ticks()).To(Equal(tr.Ticks()))
			Expect(player.Ticks()).To(Equal(4))

			player.Cancel()
			Expect(player.TotalTicks()).To(BeZero())
		})

		It("renders once up front and once per advancing tick", func() {
			Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
			Expect(renders).To(Equal(1))

			clock.RunUntilIdle(0)
			Expect(renders).To(Equal(4))
		})

		It("spaces ticks by the configured interval", func() {
			Expect(player.PlayEvery(tr, 30*time.Millisecond)).To(Succeed())
			clock.RunUntilIdle(0)
			Expect(clock.Now()).To(Equal(3 * 30 * time.Millisecond))
		})

		It("does not alias the caller's slices", func() {
			Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
			tr.Visited[0] = grid.Cell{X: 9, Y: 9}
			clock.RunUntilIdle(0)
			Expect(player.State().Visited.Has(grid.Cell{X: 0, Y: 0})).To(BeTrue())
		})
	})

	It("finishes an empty trace in exactly one tick", func() {
		Expect(player.Play(trace.Trace{}, trace.DefaultSpeed)).To(Succeed())
		Expect(clock.RunUntilIdle(0)).To(Equal(1))

		Expect(player.Phase()).To(Equal(trace.Done))
		Expect(player.Ticks()).To(Equal(1))
		Expect(player.State().Empty()).To(BeTrue())
		Expect(renders).To(Equal(1))
	})

	DescribeTable("reveals path cells only after both search sequences are exhausted",
		func(v, f, p int) {
			tr := trace.Trace{Visited: line(0, v), Frontier: line(1, f), Path: line(2, p)}
			onRender = func(st *trace.State) {
				searching := st.VisitedCursor < v || st.FrontierCursor < f
				if searching {
					Expect(st.Path).To(BeEmpty())
				}
				Expect(st.Visited.Len()).To(Equal(st.VisitedCursor))
				Expect(st.Frontier.Len()).To(Equal(st.FrontierCursor))
				Expect(st.Path).To(HaveLen(st.PathCursor))
			}

			Expect(player.Play(tr, trace.MaxSpeed)).To(Succeed())
			clock.RunUntilIdle(0)

			st := player.State()
			Expect(st.Phase).To(Equal(trace.Done))
			Expect(st.VisitedCursor).To(Equal(v))
			Expect(st.FrontierCursor).To(Equal(f))
			Expect(st.Path).To(Equal(tr.Path))
			Expect(player.Ticks()).To(Equal(tr.Ticks()))
		},
		Entry("visited only", 4, 0, 0),
		Entry("frontier only", 0, 3, 0),
		Entry("path only", 0, 0, 3),
		Entry("visited longer than frontier", 6, 2, 4),
		Entry("frontier longer than visited", 1, 5, 2),
		Entry("equal lengths", 3, 3, 3),
		Entry("single cells", 1, 1, 1),
	)

	It("replays visited and frontier in delivery order", func() {
		tr := trace.Trace{
			Visited:  []grid.Cell{{X: 2, Y: 2}, {X: 0, Y: 0}, {X: 1, Y: 1}},
			Frontier: []grid.Cell{{X: 5, Y: 0}, {X: 4, Y: 0}},
		}
		var visitedOrder, frontierOrder []grid.Cell
		seenV, seenF := 0, 0
		onRender = func(st *trace.State) {
			if st.VisitedCursor > seenV {
				visitedOrder = append(visitedOrder, tr.Visited[st.VisitedCursor-1])
				Expect(st.Visited.Has(tr.Visited[st.VisitedCursor-1])).To(BeTrue())
				seenV = st.VisitedCursor
			}
			if st.FrontierCursor > seenF {
				frontierOrder = append(frontierOrder, tr.Frontier[st.FrontierCursor-1])
				seenF = st.FrontierCursor
			}
		}

		Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
		clock.RunUntilIdle(0)

		Expect(visitedOrder).To(Equal(tr.Visited))
		Expect(frontierOrder).To(Equal(tr.Frontier))
	})

	Describe("Cancel", func() {
		tr := trace.Trace{Visited: line(0, 5), Frontier: line(1, 5), Path: line(2, 5)}

		It("stops mutation and rendering when called from inside tick k", func() {
			const k = 3
			ticks := 0
			onRender = func(st *trace.State) {
				if st.VisitedCursor == 0 {
					return
				}
				ticks++
				if ticks == k {
					player.Cancel()
				}
			}

			Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
			clock.RunUntilIdle(0)

			Expect(renders).To(Equal(1 + k))
			Expect(player.Phase()).To(Equal(trace.Idle))
			Expect(player.State().Empty()).To(BeTrue())
			Expect(clock.Pending()).To(BeZero())
		})

		It("turns already scheduled ticks into no-ops", func() {
			Expect(player.Play(tr, trace.DefaultSpeed)).To(Succeed())
			clock.Step()
			clock.Step()
			Expect(clock.Pending()).To(Equal(1))
			rendered := renders

			player.Cancel()
			Expect(player.Phase()).To(Equal(trace.Idle))
			Expect(player.State().Empty()).To(BeTrue())

			clock.RunUntilIdle(0)
			Expect(renders).To(Equal(rendered))
			Expect(player.State().Empty()).To(BeTrue())
		})

		It("clears a finished playback", func() {
			Expect(player.Play(tr, trace.MaxSpeed)).To(Succeed())
			clock.RunUntilIdle(0)
			Expect(player.Phase()).To(Equal(trace.Done))

			player.Cancel()
			Expect(player.Phase()).To(Equal(trace.Idle))
			Expect(player.State().Empty()).To(BeTrue())
		})
	})

	Describe("Play while playing", func() {
		It("resets cursors and revealed cells before replaying the new trace", func() {
			first := trace.Trace{Visited: line(0, 6), Frontier: line(1, 6), Path: line(2, 6)}
			second := trace.Trace{Visited: []grid.Cell{{X: 7, Y: 7}}, Path: []grid.Cell{{X: 8, Y: 8}}}

			Expect(player.Play(first, trace.DefaultSpeed)).To(Succeed())
			clock.Step()
			clock.Step()
			Expect(player.State().VisitedCursor).To(Equal(2))

			var atRestart trace.State
			onRender = func(st *trace.State) {
				if atRestart.Visited == nil {
					atRestart = st.Clone()
				}
			}
			Expect(player.Play(second, trace.DefaultSpeed)).To(Succeed())

			Expect(atRestart.VisitedCursor).To(BeZero())
			Expect(atRestart.FrontierCursor).To(BeZero())
			Expect(atRestart.PathCursor).To(BeZero())
			Expect(atRestart.Empty()).To(BeTrue())

			clock.RunUntilIdle(0)
			st := player.State()
			Expect(st.Phase).To(Equal(trace.Done))
			Expect(st.Visited).To(Equal(grid.NewCellSet(grid.Cell{X: 7, Y: 7})))
			Expect(st.Frontier.Len()).To(BeZero())
			Expect(st.Path).To(Equal([]grid.Cell{{X: 8, Y: 8}}))
		})

		It("uses the new speed", func() {
			Expect(player.Play(trace.Trace{Visited: line(0, 3)}, 1)).To(Succeed())
			Expect(player.Interval()).To(Equal(100 * time.Millisecond))
			Expect(player.Play(trace.Trace{Visited: line(0, 3)}, 91)).To(Succeed())
			Expect(player.Interval()).To(Equal(10 * time.Millisecond))
		})
	})

	Describe("hooks", func() {
		It("reports play, ticks and completion", func() {
			var plays, ticks, done, cancels, doneTicks int
			hooked := trace.NewPlayer(clock, trace.WithHooks(trace.Hooks{
				OnPlay:   func(trace.Trace, time.Duration) { plays++ },
				OnTick:   func(*trace.State) { ticks++ },
				OnCancel: func(*trace.State) { cancels++ },
				OnDone: func(_ *trace.State, n int) {
					done++
					doneTicks = n
				},
			}))

			tr := trace.Trace{Visited: line(0, 2), Path: line(1, 1)}
			Expect(hooked.Play(tr, trace.DefaultSpeed)).To(Succeed())
			Expect(hooked.Play(tr, trace.DefaultSpeed)).To(Succeed())
			clock.RunUntilIdle(0)

			Expect(plays).To(Equal(2))
			Expect(cancels).To(Equal(1))
			Expect(ticks).To(Equal(2))
			Expect(done).To(Equal(1))
			Expect(doneTicks).To(Equal(3))
		})
	})

	It("rejects a non-positive interval without touching state", func() {
		Expect(player.PlayEvery(trace.Trace{Visited: line(0, 1)}, 0)).To(MatchError(trace.ErrInvalidInterval))
		Expect(player.Phase()).To(Equal(trace.Idle))
		Expect(renders).To(BeZero())
	})

	It("requires a scheduler", func() {
		p := trace.NewPlayer(nil)
		Expect(p.Play(trace.Trace{}, 1)).To(MatchError(trace.ErrNoScheduler))
	})
})

var _ = DescribeTable("IntervalForSpeed",
	func(speed int, want time.Duration) {
		Expect(trace.IntervalForSpeed(speed)).To(Equal(want))
	},
	Entry("slowest", 1, 100*time.Millisecond),
	Entry("default", trace.DefaultSpeed, 20*time.Millisecond),
	Entry("fastest", trace.MaxSpeed, time.Millisecond),
	Entry("beyond max stays positive", 500, time.Millisecond),
)
