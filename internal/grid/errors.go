package grid

import "errors"

var (
	// ErrEmptyGrid indicates a matrix with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: matrix must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")

	// ErrCellValue indicates a matrix value other than 0 (open) or 1 (wall).
	ErrCellValue = errors.New("grid: cell value must be 0 or 1")

	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: cell out of bounds")

	// ErrWallCell indicates a marker placed on a wall.
	ErrWallCell = errors.New("grid: cell is a wall")

	// ErrCellFormat indicates a cell that is not encoded as [x, y].
	ErrCellFormat = errors.New("grid: cell must be a two-element [x, y] array")
)
