// Package render draws a maze and its revealed search onto a surface.
//
// A [Painter] walks the grid and the player's revealed state in a fixed order
// (cells, visited, frontier, path, markers) and issues two kinds of calls on a
// [Surface]: whole-cell fills in grid coordinates and marker circles in pixel
// coordinates. Four surfaces ship with the package:
//
//   - [TerminalSurface]: coloured two-column blocks for the TUI
//   - [BrailleSurface]: a monochrome 2x2-dots-per-cell preview
//   - [SVGSurface]: a standalone SVG document
//   - [ImageSurface]: an RGBA image with PNG encoding
//
// [Layout] holds the cell-size arithmetic shared by all of them, including the
// mapping from a pointer position back to a cell.
package render
