package mcp

import (
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.Session.PollInterval != 100*time.Millisecond {
		t.Fatalf("expected default poll interval, got %v", cfg.Session.PollInterval)
	}
	if diff := cmp.Diff([]string{"Simon Sonundrum"}, cfg.Session.Ignored); diff != "" {
		t.Fatalf("ignored mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SONUNDRUM_MCP_HTTP_ADDR", "env-http")
	t.Setenv("SONUNDRUM_MODULES", "Wires,Maze")
	t.Setenv("SONUNDRUM_SEED", "5")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-transport", "http", "-modules", "Keypad, Keypad", "-seed", "9"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.Session.Seed != 9 {
		t.Fatalf("expected flag seed, got %d", cfg.Session.Seed)
	}
	if diff := cmp.Diff([]string{"Keypad", "Keypad"}, cfg.Session.Modules); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigReadsEnvModules(t *testing.T) {
	t.Setenv("SONUNDRUM_MODULES", "Wires,Maze")

	cfg, err := ParseConfig(flag.NewFlagSet("mcp", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if diff := cmp.Diff([]string{"Wires", "Maze"}, cfg.Session.Modules); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	t.Setenv("SONUNDRUM_OTEL_ENDPOINT", "")
	cfg, err := ParseConfig(flag.NewFlagSet("mcp", flag.ContinueOnError), []string{"-transport", "carrier-pigeon", "-seed", "1"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Log.Path = "stderr"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err = Run(ctx, cfg)
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}
