// Package sched provides cooperative callback schedulers.
//
// Every scheduler satisfies the same contract: AfterFunc(d, fn) arranges for
// fn to run once, after at least d, on the scheduler's single logical thread.
// Callbacks never run concurrently with each other.
//
//   - [Loop]: a real-time event loop driven by one goroutine
//   - [Manual]: a virtual clock advanced explicitly, for tests and replays
//
// Cancellation is not part of the contract. Owners of scheduled callbacks
// guard them with their own generation counters.
package sched
