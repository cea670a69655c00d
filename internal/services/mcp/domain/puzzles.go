package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/gram/internal/core/gram/catalog"
	apperrors "github.com/louisbranch/gram/internal/platform/errors"
	"github.com/louisbranch/gram/internal/platform/pagination"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const puzzleURIPrefix = "gram://puzzles/"

var (
	puzzlePageSize = pagination.PageSizeConfig{Default: 20, Max: 50}
	puzzleOrderBy  = pagination.OrderByConfig{Default: catalog.FieldName, Allowed: catalog.OrderFields}
)

// GramPuzzlesInput represents the MCP tool input for listing puzzles.
type GramPuzzlesInput struct {
	Filter   string `json:"filter,omitempty" jsonschema:"AIP-160 filter over name, size and filled, for example size = 7 AND filled < 30"`
	OrderBy  string `json:"order_by,omitempty" jsonschema:"sort field: name, size or filled"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"maximum number of puzzles to return (default 20, max 50)"`
}

// PuzzleSummary represents one catalog puzzle in MCP tool output.
type PuzzleSummary struct {
	Name    string `json:"name" jsonschema:"puzzle name"`
	Size    int    `json:"size" jsonschema:"side length of the puzzle"`
	Filled  int    `json:"filled" jsonschema:"number of filled cells"`
	Encoded string `json:"encoded" jsonschema:"compact grid encoding"`
	URI     string `json:"uri" jsonschema:"resource URI with the full puzzle"`
}

// GramPuzzlesResult represents the MCP tool output for listing puzzles.
type GramPuzzlesResult struct {
	Puzzles []PuzzleSummary `json:"puzzles" jsonschema:"matching puzzles"`
}

// PuzzlePayload represents the MCP resource payload for one puzzle.
type PuzzlePayload struct {
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	Filled  int      `json:"filled"`
	Encoded string   `json:"encoded"`
	Rows    []string `json:"rows"`
	RowClue [][]int  `json:"row_clues"`
	ColClue [][]int  `json:"col_clues"`
}

// GramPuzzlesTool defines the MCP tool schema for listing puzzles.
func GramPuzzlesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gram_puzzles",
		Description: "Lists built-in puzzles, optionally filtered by name, size or filled count",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}
}

// GramPuzzlesHandler lists catalog puzzles.
func GramPuzzlesHandler(c *catalog.Catalog) mcp.ToolHandlerFor[GramPuzzlesInput, GramPuzzlesResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GramPuzzlesInput) (*mcp.CallToolResult, GramPuzzlesResult, error) {
		if c == nil {
			return nil, GramPuzzlesResult{}, fmt.Errorf("puzzle catalog is not configured")
		}
		pageSize := pagination.ClampPageSize(input.PageSize, puzzlePageSize)
		orderBy, err := pagination.NormalizeOrderBy(input.OrderBy, puzzleOrderBy)
		if err != nil {
			return nil, GramPuzzlesResult{}, toolError(apperrors.InvalidArgument("order_by", err))
		}
		puzzles, err := c.Filter(input.Filter)
		if err != nil {
			return nil, GramPuzzlesResult{}, toolError(err)
		}
		if err := catalog.Order(puzzles, orderBy); err != nil {
			return nil, GramPuzzlesResult{}, toolError(apperrors.InvalidArgument("order_by", err))
		}
		if len(puzzles) > pageSize {
			puzzles = puzzles[:pageSize]
		}

		result := GramPuzzlesResult{Puzzles: make([]PuzzleSummary, 0, len(puzzles))}
		for _, p := range puzzles {
			result.Puzzles = append(result.Puzzles, PuzzleSummary{
				Name:    p.Name,
				Size:    p.Size(),
				Filled:  p.Filled(),
				Encoded: p.Encoded,
				URI:     puzzleURIPrefix + p.Name,
			})
		}
		return nil, result, nil
	}
}

// PuzzleResourceTemplate defines the MCP resource template for one puzzle.
func PuzzleResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "puzzle",
		Title:       "Puzzle",
		Description: "A built-in puzzle with its rows and clues. URI format: gram://puzzles/{name}",
		MIMEType:    "application/json",
		URITemplate: "gram://puzzles/{name}",
	}
}

// PuzzleResourceHandler returns one catalog puzzle.
func PuzzleResourceHandler(c *catalog.Catalog) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if c == nil {
			return nil, fmt.Errorf("puzzle catalog is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("puzzle name is required; use URI format gram://puzzles/{name}")
		}
		uri := req.Params.URI
		name, err := parsePuzzleURI(uri)
		if err != nil {
			return nil, err
		}
		p, ok := c.Lookup(name)
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		data, err := json.MarshalIndent(PuzzlePayload{
			Name:    p.Name,
			Size:    p.Size(),
			Filled:  p.Filled(),
			Encoded: p.Encoded,
			Rows:    p.Grid.Lines(),
			RowClue: p.Grid.RowClues(),
			ColClue: p.Grid.ColClues(),
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal puzzle: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// parsePuzzleURI extracts the puzzle name from gram://puzzles/{name}.
func parsePuzzleURI(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, puzzleURIPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("invalid puzzle URI %q: expected gram://puzzles/{name}", uri)
	}
	return name, nil
}
