package gram

import "fmt"

// DimensionError reports a negative grid size.
type DimensionError struct {
	Size int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("gram: invalid size %d", e.Size)
}

// ShapeError reports a matrix that is not square. Row is the 0-based index
// of the first row whose length differs from the row count.
type ShapeError struct {
	Row      int
	Length   int
	Expected int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("gram: row %d has length %d, expected %d", e.Row, e.Length, e.Expected)
}

// ParseError reports an unexpected character in the human format. Line and
// Column are 1-indexed positions after trimming.
type ParseError struct {
	Char   rune
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gram: unexpected character %q at line %d, column %d: want 'O' for filled or 'X' for blank", e.Char, e.Line, e.Column)
}

// FormatKind classifies a compact-format failure.
type FormatKind string

const (
	// FormatMissingPrefix means the document does not start with 'g'.
	FormatMissingPrefix FormatKind = "missing_prefix"
	// FormatInvalidTag means a block does not start with 'f' or 'b'.
	FormatInvalidTag FormatKind = "invalid_tag"
	// FormatInvalidLength means a block length is not a decimal digit.
	FormatInvalidLength FormatKind = "invalid_length"
	// FormatTruncatedBlock means a row ends halfway through a block.
	FormatTruncatedBlock FormatKind = "truncated_block"
)

// FormatError reports malformed compact input. Offset is the 0-based byte
// offset of Char in the trimmed, lowercased document; Char is zero when the
// document is empty.
type FormatError struct {
	Kind   FormatKind
	Char   rune
	Offset int
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case FormatMissingPrefix:
		if e.Char == 0 {
			return "gram: empty document, expected prefix 'g'"
		}
		return fmt.Sprintf("gram: expected prefix 'g', got %q", e.Char)
	case FormatInvalidTag:
		return fmt.Sprintf("gram: invalid block type %q at offset %d, expected 'f' or 'b'", e.Char, e.Offset)
	case FormatInvalidLength:
		return fmt.Sprintf("gram: invalid block length %q at offset %d, expected a digit", e.Char, e.Offset)
	case FormatTruncatedBlock:
		return fmt.Sprintf("gram: block %q at offset %d has no length", e.Char, e.Offset)
	default:
		return fmt.Sprintf("gram: malformed document at offset %d", e.Offset)
	}
}

// RangeError reports a coordinate outside the grid.
type RangeError struct {
	X    int
	Y    int
	Size int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("gram: cell (%d, %d) outside %dx%d grid", e.X, e.Y, e.Size, e.Size)
}

// EncodingRangeError reports a run too long for the single-digit compact
// format. Row and Block are 0-based.
type EncodingRangeError struct {
	Row    int
	Block  int
	Length int
}

func (e *EncodingRangeError) Error() string {
	return fmt.Sprintf("gram: row %d block %d has length %d, compact format allows at most %d", e.Row, e.Block, e.Length, MaxRunLength)
}
