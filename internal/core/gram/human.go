package gram

import (
	"strings"
	"unicode/utf8"
)

// ParseHuman builds a Grid from its human format: one line per row, 'O' for
// filled and 'X' for blank, ignoring case and whitespace around the document
// and around each line. A document that is empty after trimming yields the
// empty grid.
//
// Returns a *ParseError for any other character and a *ShapeError when the
// lines do not form a square.
//
// Example:
//
//	g, err := ParseHuman(`
//	    XXO
//	    XOX
//	    OOX`)
func ParseHuman(s string) (Grid, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Grid{}, nil
	}

	lines := strings.Split(s, "\n")
	rows := make([][]Cell, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		row := make([]Cell, 0, utf8.RuneCountInString(line))
		col := 0
		for _, r := range line {
			col++
			c, ok := cellFromChar(r)
			if !ok {
				return Grid{}, &ParseError{Char: r, Line: i + 1, Column: col}
			}
			row = append(row, c)
		}
		rows[i] = row
	}

	if err := Validate(rows); err != nil {
		return Grid{}, err
	}
	return Grid{cells: rows}, nil
}

// String returns the human format of g, one row per line with no trailing
// newline.
func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Lines returns the human format of each row. The empty grid has no lines.
func (g Grid) Lines() []string {
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		line := make([]byte, len(row))
		for j, c := range row {
			line[j] = charFromCell(c)
		}
		lines[i] = string(line)
	}
	return lines
}

func cellFromChar(r rune) (Cell, bool) {
	switch r {
	case 'O', 'o':
		return Filled, true
	case 'X', 'x':
		return Blank, true
	default:
		return Blank, false
	}
}

func charFromCell(c Cell) byte {
	if c == Filled {
		return 'O'
	}
	return 'X'
}
