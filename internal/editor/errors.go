package editor

import "errors"

var (
	// ErrNoMaze indicates an operation that needs a generated maze.
	ErrNoMaze = errors.New("editor: no maze generated yet")

	// ErrInvalidMaze indicates a maze whose markers are not on open cells.
	ErrInvalidMaze = errors.New("editor: maze markers must be on open in-bounds cells")

	// ErrStaleSearch indicates a search result for a grid that has since changed
	// or for a search that has been superseded.
	ErrStaleSearch = errors.New("editor: search result is stale")
)
