// Package viz is the interactive terminal front end for pathviz.
//
// The package implements an editor using the Bubble Tea framework:
//
//   - [App]: maze editor, search launcher and playback view
//   - Theme selection with 5 built-in color schemes
//
// Playback ticks are scheduled as Bubble Tea commands and run inside Update,
// so the editor and the player are only ever touched from the program's event
// loop. Solver calls run in commands and hand their results back as messages.
//
// # Key Bindings
//
//	arrows/hjkl - Move the cursor
//	space       - Apply the current tool at the cursor
//	w x s e     - Tool: wall, erase, start, end
//	r           - Run the search
//	g           - Generate a new maze
//	a           - Toggle the generation algorithm
//	+/-         - Playback speed
//	[ ]         - Maze size for the next generation
//	c           - Cancel playback
//	t           - Cycle color themes
//	?           - Show help overlay
//	q           - Quit
//
// A click applies the current tool. With the wall and erase tools, holding the
// button down paints every cell crossed.
package viz
