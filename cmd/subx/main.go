package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subx/internal/commands"
	"subx/internal/config"
)

func main() {
	// Load config
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		// Continue without config, commands reload it when needed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	if err := commands.Execute(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
