package gram

import (
	"strings"
	"unicode/utf8"
)

// MaxRunLength is the longest run the compact format can carry: block lengths
// are a single decimal digit.
const MaxRunLength = 9

const (
	docPrefix = 'g'
	rowSep    = 'r'
	filledTag = 'f'
	blankTag  = 'b'
)

// Encode returns the compact run-length encoding of g.
//
// The document is the prefix 'g' followed, for each row, by the separator 'r'
// and the row's blocks as <tag><digit> pairs, tag 'f' for filled and 'b' for
// blank:
//
//	XXXXO
//	XXOOO
//	OOOOO    ->  grb4f1rb2f3rf5rb4f1rb4f1
//	XXXXO
//	XXXXO
//
// The empty grid encodes as "g".
//
// Returns an *EncodingRangeError when any row holds a run longer than
// MaxRunLength; runs are never truncated.
func Encode(g Grid) (string, error) {
	var b strings.Builder
	b.WriteByte(docPrefix)
	for i, row := range g.RowBlocks() {
		b.WriteByte(rowSep)
		for j, block := range row {
			if block.Length > MaxRunLength {
				return "", &EncodingRangeError{Row: i, Block: j, Length: block.Length}
			}
			b.WriteByte(tagFromCell(block.State))
			b.WriteByte(byte('0' + block.Length))
		}
	}
	return b.String(), nil
}

// Encode is shorthand for Encode(g).
func (g Grid) Encode() (string, error) {
	return Encode(g)
}

// Decode parses a compact document produced by Encode. Input is
// case-insensitive and surrounding whitespace is ignored. Empty row segments
// are skipped, so a trailing 'r' does not add a row.
//
// Returns a *FormatError naming the offending character and its offset in the
// trimmed, lowercased document, or a *ShapeError when the decoded rows are not
// square.
func Decode(s string) (Grid, error) {
	doc := strings.ToLower(strings.TrimSpace(s))
	if doc == "" {
		return Grid{}, &FormatError{Kind: FormatMissingPrefix}
	}
	if doc[0] != docPrefix {
		r, _ := utf8.DecodeRuneInString(doc)
		return Grid{}, &FormatError{Kind: FormatMissingPrefix, Char: r}
	}

	rows := [][]Cell{}
	for start := 1; start <= len(doc); {
		end := strings.IndexByte(doc[start:], rowSep)
		if end < 0 {
			end = len(doc)
		} else {
			end += start
		}
		if end > start {
			row, err := decodeRow(doc, start, end)
			if err != nil {
				return Grid{}, err
			}
			rows = append(rows, row)
		}
		start = end + 1
	}
	return New(rows)
}

// decodeRow expands the blocks in doc[start:end] into cells.
func decodeRow(doc string, start, end int) ([]Cell, error) {
	row := []Cell{}
	for i := start; i < end; i += 2 {
		state, ok := cellFromTag(doc[i])
		if !ok {
			return nil, &FormatError{Kind: FormatInvalidTag, Char: runeAt(doc, i), Offset: i}
		}
		if i+1 >= end {
			return nil, &FormatError{Kind: FormatTruncatedBlock, Char: runeAt(doc, i), Offset: i}
		}
		digit := doc[i+1]
		if digit < '0' || digit > '9' {
			return nil, &FormatError{Kind: FormatInvalidLength, Char: runeAt(doc, i+1), Offset: i + 1}
		}
		for n := 0; n < int(digit-'0'); n++ {
			row = append(row, state)
		}
	}
	return row, nil
}

func runeAt(s string, i int) rune {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

func cellFromTag(tag byte) (Cell, bool) {
	switch tag {
	case filledTag:
		return Filled, true
	case blankTag:
		return Blank, true
	default:
		return Blank, false
	}
}

func tagFromCell(c Cell) byte {
	if c == Filled {
		return filledTag
	}
	return blankTag
}
