// Package editor owns the editable maze of one visualization: the grid, its
// start and end markers, and the trace player revealing searches on it.
//
// Every successful mutation cancels the player before it touches the grid, so
// a frame never mixes a stale trace with a changed maze. Rejected edits (out
// of bounds, a marker onto a wall) change nothing and report false.
//
// # Searching from an event loop
//
// Hosts that must not block their loop on the network split a search in two:
//
//	req, _ := m.BeginSearch()          // on the loop: cancels playback, snapshots the grid
//	tr, err := client.FindPath(ctx, req.Path) // anywhere
//	err = m.Play(req, tr, speed)       // on the loop: ErrStaleSearch if the grid moved on
//
// [Model.Run] does all three in one blocking call.
package editor
