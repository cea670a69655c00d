// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/gram/internal/platform/cmd"
	mcpservice "github.com/louisbranch/gram/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Transport    string   `env:"GRAM_MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string   `env:"GRAM_MCP_HTTP_ADDR"     envDefault:"localhost:8092"`
	AllowedHosts []string `env:"GRAM_MCP_ALLOWED_HOSTS" envSeparator:","`
}

// Validate rejects unknown transports.
func (c *Config) Validate() error {
	switch mcpservice.TransportKind(c.Transport) {
	case mcpservice.TransportStdio, mcpservice.TransportHTTP:
		return nil
	default:
		return fmt.Errorf("transport must be %q or %q, got %q", mcpservice.TransportStdio, mcpservice.TransportHTTP, c.Transport)
	}
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport:    mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
		})
	})
}
