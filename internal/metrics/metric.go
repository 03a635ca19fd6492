package metrics

import (
	"time"

	"github.com/san-kum/pathviz/internal/trace"
)

// Metric accumulates a single number over the ticks of one playback.
type Metric interface {
	Name() string
	Observe(st *trace.State)
	Value() float64
	Reset()
}

// Attach returns player hooks that reset ms when a playback starts and feed
// them every revealed tick.
func Attach(ms ...Metric) trace.Hooks {
	return trace.Hooks{
		OnPlay: func(trace.Trace, time.Duration) {
			for _, m := range ms {
				m.Reset()
			}
		},
		OnTick: func(st *trace.State) {
			for _, m := range ms {
				m.Observe(st)
			}
		},
	}
}
