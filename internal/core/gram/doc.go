// Package gram implements the square two-state grid behind a nonogram board.
//
// A Grid is an immutable N×N matrix of Cells. Every transform returns a new
// Grid, so a holder of an older value never observes a later toggle.
//
// # Derived views
//
// Blocks are maximal runs of equal cells along one row or column. They are
// recomputed from the matrix on every call and carry positional ids that are
// only meant as rendering keys. Clues are the lengths of the filled blocks,
// the numbers printed beside a nonogram board.
//
// # Formats
//
// The human format is one line per row, 'O' for filled and 'X' for blank,
// case-insensitive:
//
//	XXO
//	XOX
//	OOX
//
// The compact format is a run-length description meant for URLs:
//
//	g        start of document
//	r        start of row (separator, never trailing)
//	f<n>     filled block of n cells
//	b<n>     blank block of n cells
//
// so the grid above encodes as "grb2f1rb1f1b1rf2b1". Run lengths are a single
// decimal digit; grids with a run longer than MaxRunLength cannot be encoded.
//
// # Errors
//
// Every failure is a distinct error type carrying its location context:
// DimensionError, ShapeError, ParseError, FormatError, RangeError and
// EncodingRangeError. Match them with errors.As.
package gram
