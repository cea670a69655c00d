package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/louisbranch/gram/internal/core/gram/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "gram"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps the HTTP transport on loopback unless configured.
	defaultHTTPAddr = "localhost:8092"
)

// TransportKind selects how the MCP server talks to clients.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server runtime.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for TransportHTTP. Defaults to localhost:8092.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted by the HTTP transport.
	AllowedHosts []string
	Catalog      *catalog.Catalog
	Logger       *log.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	logger    *log.Logger
}

// New creates an MCP server with every gram tool and resource registered.
func New(cat *catalog.Catalog, logger *log.Logger) (*Server, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	if err := registerModules(mcpServer, cat); err != nil {
		return nil, fmt.Errorf("register mcp modules: %w", err)
	}
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// Serve runs the MCP server over transport until the client disconnects or
// ctx is cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("mcp server is not configured")
	}
	if transport == nil {
		return fmt.Errorf("mcp transport is required")
	}
	if err := s.mcpServer.Run(ctx, transport); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(cfg.Catalog, cfg.Logger)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = defaultHTTPAddr
		}
		return server.ServeHTTP(ctx, addr, cfg.AllowedHosts)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}
