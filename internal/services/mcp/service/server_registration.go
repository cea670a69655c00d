package service

import (
	"fmt"

	"github.com/louisbranch/gram/internal/core/gram/catalog"
	"github.com/louisbranch/gram/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

const (
	mcpGramToolsModuleName       = "gram-tools"
	mcpPuzzleToolsModuleName     = "puzzle-tools"
	mcpPuzzleResourcesModuleName = "puzzle-resources"
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(*mcp.Server, *catalog.Catalog) error
}

var mcpRegistrationModules = []mcpRegistrationModule{
	{
		name: mcpGramToolsModuleName,
		kind: mcpRegistrationKindTools,
		register: func(server *mcp.Server, _ *catalog.Catalog) error {
			mcp.AddTool(server, domain.GramNewTool(), domain.GramNewHandler())
			mcp.AddTool(server, domain.GramDecodeTool(), domain.GramDecodeHandler())
			mcp.AddTool(server, domain.GramEncodeTool(), domain.GramEncodeHandler())
			mcp.AddTool(server, domain.GramToggleTool(), domain.GramToggleHandler())
			return nil
		},
	},
	{
		name: mcpPuzzleToolsModuleName,
		kind: mcpRegistrationKindTools,
		register: func(server *mcp.Server, cat *catalog.Catalog) error {
			if cat == nil {
				return fmt.Errorf("puzzle catalog is required")
			}
			mcp.AddTool(server, domain.GramPuzzlesTool(), domain.GramPuzzlesHandler(cat))
			return nil
		},
	},
	{
		name: mcpPuzzleResourcesModuleName,
		kind: mcpRegistrationKindResources,
		register: func(server *mcp.Server, cat *catalog.Catalog) error {
			if cat == nil {
				return fmt.Errorf("puzzle catalog is required")
			}
			server.AddResourceTemplate(domain.PuzzleResourceTemplate(), domain.PuzzleResourceHandler(cat))
			return nil
		},
	},
}

// registerModules registers tools before resources so tool registration
// errors surface first.
func registerModules(server *mcp.Server, cat *catalog.Catalog) error {
	for _, kind := range []mcpRegistrationKind{mcpRegistrationKindTools, mcpRegistrationKindResources} {
		for _, module := range mcpRegistrationModules {
			if module.kind != kind {
				continue
			}
			if err := module.register(server, cat); err != nil {
				return fmt.Errorf("register %s: %w", module.name, err)
			}
		}
	}
	return nil
}
