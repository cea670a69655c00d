package gram

// Grid is an immutable square matrix of cells. The zero value is the empty
// grid of size 0.
type Grid struct {
	cells [][]Cell
}

// New builds a Grid from rows, copying them.
//
// Returns a *ShapeError when some row's length differs from the row count.
func New(rows [][]Cell) (Grid, error) {
	if err := Validate(rows); err != nil {
		return Grid{}, err
	}
	return Grid{cells: copyMatrix(rows)}, nil
}

// NewBlank returns a size×size grid of blank cells.
//
// Returns a *DimensionError when size is negative.
func NewBlank(size int) (Grid, error) {
	if size < 0 {
		return Grid{}, &DimensionError{Size: size}
	}
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
	}
	return Grid{cells: cells}, nil
}

// Validate checks that rows form a square matrix. A matrix with no rows is
// valid.
func Validate(rows [][]Cell) error {
	for i, row := range rows {
		if len(row) != len(rows) {
			return &ShapeError{Row: i, Length: len(row), Expected: len(rows)}
		}
	}
	return nil
}

// Validate re-checks the square invariant of g.
func (g Grid) Validate() error {
	return Validate(g.cells)
}

// Size returns the side length.
func (g Grid) Size() int {
	return len(g.cells)
}

// Rows returns a copy of the matrix in row-major order.
func (g Grid) Rows() [][]Cell {
	return copyMatrix(g.cells)
}

// Cols returns the transpose: Cols()[i][j] == Rows()[j][i].
func (g Grid) Cols() [][]Cell {
	n := len(g.cells)
	cols := make([][]Cell, n)
	for i := range cols {
		cols[i] = make([]Cell, n)
		for j := 0; j < n; j++ {
			cols[i][j] = g.cells[j][i]
		}
	}
	return cols
}

// Filled returns the number of filled cells.
func (g Grid) Filled() int {
	count := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == Filled {
				count++
			}
		}
	}
	return count
}

// Equal reports whether g and other hold the same cells.
func (g Grid) Equal(other Grid) bool {
	if len(g.cells) != len(other.cells) {
		return false
	}
	for i, row := range g.cells {
		for j, c := range row {
			if other.cells[i][j] != c {
				return false
			}
		}
	}
	return true
}

// ToggleCell returns a copy of g with the cell at column x, row y flipped.
// Both coordinates are 0-based. g itself is not modified.
//
// Returns a *RangeError when either coordinate is outside [0, Size()).
func (g Grid) ToggleCell(x, y int) (Grid, error) {
	n := len(g.cells)
	if x < 0 || x >= n || y < 0 || y >= n {
		return Grid{}, &RangeError{X: x, Y: y, Size: n}
	}
	cells := copyMatrix(g.cells)
	cells[y][x] = cells[y][x].Toggle()
	return Grid{cells: cells}, nil
}

func copyMatrix(rows [][]Cell) [][]Cell {
	out := make([][]Cell, len(rows))
	for i, row := range rows {
		out[i] = append([]Cell(nil), row...)
		if out[i] == nil {
			out[i] = []Cell{}
		}
	}
	return out
}
