// Package cmd holds the startup path shared by gram commands: configuration
// from the environment and flags, then a run loop wrapped in tracing.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/gram/internal/platform/config"
	"github.com/louisbranch/gram/internal/platform/otel"
	"github.com/louisbranch/gram/internal/platform/timeouts"
)

// Service names a gram command in traces and log lines.
type Service string

const (
	ServiceBoard Service = "board"
	ServiceMCP   Service = "mcp"
)

// Load fills cfg from the environment, then lets bind register flags whose
// defaults are those values, parses args and validates the result. Flags
// override the environment, and validation sees the final values.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag set is required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	return config.Validate(cfg)
}

// RunWithTelemetry installs the tracer provider for service, runs run and
// flushes spans on the way out.
func RunWithTelemetry(ctx context.Context, service Service, run func(context.Context) error) error {
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, string(service))
	if err != nil {
		return fmt.Errorf("set up %s telemetry: %w", service, err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("%s telemetry shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
