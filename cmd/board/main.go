package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	boardcmd "github.com/louisbranch/gram/internal/cmd/board"
	"github.com/louisbranch/gram/internal/platform/config"
)

func main() {
	cfg, err := boardcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf(config.ExitUsage, "parse flags: %v", err)
	}
	log.SetPrefix("[BOARD] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Probe {
		if err := boardcmd.Probe(ctx, cfg); err != nil {
			config.Exitf(config.ExitFailure, "board unhealthy: %v", err)
		}
		return
	}
	if err := boardcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
