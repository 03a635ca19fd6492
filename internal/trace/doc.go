// Package trace replays a precomputed path-search trace as a timed reveal.
//
// A [Trace] carries three ordered sequences produced by a search: the cells it
// visited, the cells it pushed onto its frontier, and the final path. A
// [Player] reveals them one tick at a time on a cooperative [Scheduler]:
//
//	Idle ──Play──▶ Playing ──(nothing left)──▶ Done
//	  ▲               │
//	  └────Cancel─────┘
//
// Each tick reveals at most one visited cell and one frontier cell. Path cells
// start appearing only once both of those sequences are exhausted.
//
// # Cancellation
//
// Every Play starts a new playback instance identified by a generation
// number. Ticks scheduled by an earlier instance see a stale generation and
// return without touching state or rendering, so pending timers never need to
// be torn down.
//
// # Thread Safety
//
// Player is NOT safe for concurrent use. All calls, including the scheduled
// ticks, must happen on the scheduler's thread.
package trace
