package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Seed    int64         `env:"TEST_SEED" envDefault:"123"`
	Ignored []string      `env:"TEST_IGNORED" envSeparator:"," envDefault:"Simon Sonundrum"`
	Poll    time.Duration `env:"TEST_POLL" envDefault:"100ms"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Seed != 123 {
		t.Fatalf("expected default seed 123, got %d", cfg.Seed)
	}
	if len(cfg.Ignored) != 1 || cfg.Ignored[0] != "Simon Sonundrum" {
		t.Fatalf("expected default ignored list, got %v", cfg.Ignored)
	}
	if cfg.Poll != 100*time.Millisecond {
		t.Fatalf("expected default poll 100ms, got %v", cfg.Poll)
	}
}

func TestParseEnvReadsPrefixedVariables(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SONUNDRUM_TEST_IGNORED", "Souvenir,Forget Me Not")
	t.Setenv("TEST_SEED", "999")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if len(cfg.Ignored) != 2 || cfg.Ignored[1] != "Forget Me Not" {
		t.Fatalf("expected prefixed ignored list, got %v", cfg.Ignored)
	}
	if cfg.Seed != 123 {
		t.Fatalf("unprefixed variable leaked into config: %d", cfg.Seed)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SONUNDRUM_TEST_SEED", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
