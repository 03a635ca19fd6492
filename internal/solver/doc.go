// Package solver talks to the remote maze and path-search service.
//
// The service exposes three endpoints:
//
//	GET  /ping
//	GET  /astar/generate?algorithm=prim&rows=20&cols=20
//	POST /astar/find-path   {"maze": [[0,1,...]], "start": [x,y], "end": [x,y]}
//
// [Client] wraps them with validation: a response that does not describe a
// usable maze or trace is reported as a [NetworkError] wrapping
// [ErrMalformedResponse], never half-applied.
//
// [NewFixtureHandler] serves a recorded maze and trace over the same protocol
// so the visualizer can run without the real service.
package solver
