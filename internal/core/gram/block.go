package gram

import "fmt"

// Block is a maximal run of equal cells within one row or column.
type Block struct {
	// ID is a positional rendering key, unique per axis, line and position.
	// It is not part of block identity and is not stable across toggles.
	ID     string
	State  Cell
	Length int
}

// RowBlocks returns the blocks of every row, scanning left to right.
// Row ids have the form "r<row>b<n>", both 1-indexed.
func (g Grid) RowBlocks() [][]Block {
	return linesBlocks(g.cells, "r")
}

// ColBlocks returns the blocks of every column, scanning top to bottom.
// Column ids have the form "c<col>b<n>", both 1-indexed.
func (g Grid) ColBlocks() [][]Block {
	return linesBlocks(g.Cols(), "c")
}

// RowClues returns the filled block lengths of every row.
func (g Grid) RowClues() [][]int {
	return clues(g.RowBlocks())
}

// ColClues returns the filled block lengths of every column.
func (g Grid) ColClues() [][]int {
	return clues(g.ColBlocks())
}

func linesBlocks(lines [][]Cell, axis string) [][]Block {
	out := make([][]Block, len(lines))
	for i, line := range lines {
		out[i] = lineBlocks(line, axis, i)
	}
	return out
}

func lineBlocks(line []Cell, axis string, index int) []Block {
	blocks := []Block{}
	if len(line) == 0 {
		return blocks
	}
	current := Block{State: line[0]}
	for _, c := range line {
		if c != current.State {
			blocks = appendBlock(blocks, current, axis, index)
			current = Block{State: c}
		}
		current.Length++
	}
	return appendBlock(blocks, current, axis, index)
}

func appendBlock(blocks []Block, b Block, axis string, index int) []Block {
	b.ID = fmt.Sprintf("%s%db%d", axis, index+1, len(blocks)+1)
	return append(blocks, b)
}

func clues(lines [][]Block) [][]int {
	out := make([][]int, len(lines))
	for i, line := range lines {
		out[i] = []int{}
		for _, b := range line {
			if b.State == Filled {
				out[i] = append(out[i], b.Length)
			}
		}
	}
	return out
}
