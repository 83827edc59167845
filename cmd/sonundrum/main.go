package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	playcmd "github.com/louisbranch/sonundrum/internal/cmd/play"
	"github.com/louisbranch/sonundrum/internal/platform/config"
)

// main plays Simon Sonundrum on a simulated bomb in the terminal.
func main() {
	cfg, err := playcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[SONUNDRUM] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := playcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to play: %v", err)
	}
}
