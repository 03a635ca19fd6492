// Package grid provides the cell coordinate type and the maze matrix edited
// by the path-search visualizer.
//
//   - [Cell]: integer (x, y) coordinate, comparable and usable as a map key
//   - [CellSet]: unordered set of cells
//   - [Grid]: rows x cols matrix of [Open] and [Wall] cells
//
// Cells marshal to the two-element array form `[x, y]` used by the solver
// service, in both JSON and YAML.
//
// # Coordinates
//
// X is the column and Y the row. A grid stores its cells row-major, so the
// cell (x, y) lives at cells[y][x].
package grid
