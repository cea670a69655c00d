package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/gram/internal/core/gram"
	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GramNewInput represents the MCP tool input for creating a blank grid.
type GramNewInput struct {
	Size int `json:"size" jsonschema:"side length of the blank grid, 0 to 9; 0 yields the empty grid"`
}

// GramDecodeInput represents the MCP tool input for decoding a grid.
type GramDecodeInput struct {
	Encoded string `json:"encoded" jsonschema:"compact grid encoding, for example grb1f1rf1b1"`
}

// GramEncodeInput represents the MCP tool input for encoding a drawn grid.
type GramEncodeInput struct {
	Human string `json:"human" jsonschema:"one row per line using O for filled and X for blank cells"`
}

// GramToggleInput represents the MCP tool input for flipping one cell.
type GramToggleInput struct {
	Encoded string `json:"encoded" jsonschema:"compact grid encoding"`
	X       int    `json:"x" jsonschema:"0-based column of the cell"`
	Y       int    `json:"y" jsonschema:"0-based row of the cell"`
}

// GramResult represents one grid in MCP tool output.
type GramResult struct {
	Size     int      `json:"size" jsonschema:"side length of the grid"`
	Encoded  string   `json:"encoded" jsonschema:"compact grid encoding"`
	Filled   int      `json:"filled" jsonschema:"number of filled cells"`
	Rows     []string `json:"rows" jsonschema:"rows in human format, O filled and X blank"`
	RowClues [][]int  `json:"row_clues" jsonschema:"filled run lengths of each row"`
	ColClues [][]int  `json:"col_clues" jsonschema:"filled run lengths of each column"`
}

// GramNewTool defines the MCP tool schema for blank grids.
func GramNewTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gram_new",
		Description: "Creates a blank square grid and returns its encoding",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

// GramDecodeTool defines the MCP tool schema for decoding grids.
func GramDecodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gram_decode",
		Description: "Decodes a compact grid encoding into rows and clues",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

// GramEncodeTool defines the MCP tool schema for encoding grids.
func GramEncodeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gram_encode",
		Description: "Encodes a grid drawn with O and X into the compact link format",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

// GramToggleTool defines the MCP tool schema for toggling cells.
func GramToggleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gram_toggle",
		Description: "Flips one cell of an encoded grid and returns the new grid",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

// GramNewHandler creates a blank grid.
func GramNewHandler() mcp.ToolHandlerFor[GramNewInput, GramResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GramNewInput) (*mcp.CallToolResult, GramResult, error) {
		if input.Size > gram.MaxRunLength {
			return nil, GramResult{}, toolError(apperrors.InvalidArgument("size", fmt.Errorf("size must be at most %d, got %d", gram.MaxRunLength, input.Size)))
		}
		g, err := gram.NewBlank(input.Size)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		result, err := newGramResult(g)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		return nil, result, nil
	}
}

// GramDecodeHandler decodes a compact encoding.
func GramDecodeHandler() mcp.ToolHandlerFor[GramDecodeInput, GramResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GramDecodeInput) (*mcp.CallToolResult, GramResult, error) {
		g, err := gram.Decode(input.Encoded)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		result, err := newGramResult(g)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		return nil, result, nil
	}
}

// GramEncodeHandler parses a human grid and encodes it.
func GramEncodeHandler() mcp.ToolHandlerFor[GramEncodeInput, GramResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GramEncodeInput) (*mcp.CallToolResult, GramResult, error) {
		g, err := gram.ParseHuman(input.Human)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		result, err := newGramResult(g)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		return nil, result, nil
	}
}

// GramToggleHandler flips one cell of an encoded grid.
func GramToggleHandler() mcp.ToolHandlerFor[GramToggleInput, GramResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GramToggleInput) (*mcp.CallToolResult, GramResult, error) {
		g, err := gram.Decode(input.Encoded)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		next, err := g.ToggleCell(input.X, input.Y)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		result, err := newGramResult(next)
		if err != nil {
			return nil, GramResult{}, toolError(err)
		}
		return nil, result, nil
	}
}

// newGramResult describes g, failing when it cannot be encoded.
func newGramResult(g gram.Grid) (GramResult, error) {
	encoded, err := g.Encode()
	if err != nil {
		return GramResult{}, err
	}
	return GramResult{
		Size:     g.Size(),
		Encoded:  encoded,
		Filled:   g.Filled(),
		Rows:     g.Lines(),
		RowClues: g.RowClues(),
		ColClues: g.ColClues(),
	}, nil
}
