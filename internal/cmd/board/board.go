// Package board parses board command flags and starts the board service.
package board

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/gram/internal/core/gram"
	entrypoint "github.com/louisbranch/gram/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/gram/internal/platform/grpc"
	"github.com/louisbranch/gram/internal/platform/timeouts"
	boardservice "github.com/louisbranch/gram/internal/services/board"
)

// Config holds board command configuration.
type Config struct {
	HTTPAddr    string `env:"GRAM_BOARD_HTTP_ADDR"    envDefault:"localhost:8090"`
	GRPCAddr    string `env:"GRAM_BOARD_GRPC_ADDR"    envDefault:"localhost:8091"`
	DefaultSize int    `env:"GRAM_BOARD_DEFAULT_SIZE" envDefault:"9"`
	// Probe checks a running board's health endpoint instead of serving.
	Probe bool
}

// Validate rejects default sizes whose blank board cannot be encoded.
func (c *Config) Validate() error {
	if c.DefaultSize < 1 || c.DefaultSize > gram.MaxRunLength {
		return fmt.Errorf("GRAM_BOARD_DEFAULT_SIZE must be between 1 and %d, got %d", gram.MaxRunLength, c.DefaultSize)
	}
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.Load(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
		fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address")
		fs.IntVar(&cfg.DefaultSize, "size", cfg.DefaultSize, "side of a fresh board")
		fs.BoolVar(&cfg.Probe, "probe", false, "check the health of a running board and exit")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the board service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBoard, func(ctx context.Context) error {
		server, err := boardservice.NewServer(ctx, boardservice.Config{
			HTTPAddr:    cfg.HTTPAddr,
			GRPCAddr:    cfg.GRPCAddr,
			DefaultSize: cfg.DefaultSize,
		})
		if err != nil {
			return err
		}
		defer server.Close()
		return server.Run(ctx)
	})
}

// Probe checks the board's gRPC health endpoint and reports whether it serves.
func Probe(ctx context.Context, cfg Config) error {
	if err := platformgrpc.ProbeHealth(ctx, cfg.GRPCAddr, boardservice.HealthService, timeouts.HealthProbe, log.Printf); err != nil {
		return fmt.Errorf("probe board at %s: %w", cfg.GRPCAddr, err)
	}
	return nil
}
