package gram

import "fmt"

// Cell is the state of one board position.
type Cell uint8

const (
	// Blank is an unmarked cell.
	Blank Cell = iota
	// Filled is a painted cell.
	Filled
)

// String returns the cell state name.
func (c Cell) String() string {
	switch c {
	case Blank:
		return "blank"
	case Filled:
		return "filled"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// Toggle returns the opposite state.
func (c Cell) Toggle() Cell {
	if c == Filled {
		return Blank
	}
	return Filled
}

// CellID returns the human-facing identifier of the cell at the 0-based
// row and column, e.g. "r1c3" for row 0, column 2.
func CellID(row, col int) string {
	return fmt.Sprintf("r%dc%d", row+1, col+1)
}
