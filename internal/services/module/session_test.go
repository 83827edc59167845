package module

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/sonundrum/internal/core/catalog"
	"github.com/louisbranch/sonundrum/internal/random"
)

func TestNewSession(t *testing.T) {
	session, err := NewSession(SessionConfig{
		Seed:    42,
		Modules: []string{" Wires", "", "Maze "},
	}, nil, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.Seed != 42 || session.SeedSource != random.SeedSourceConfig {
		t.Fatalf("seed = %d (%s), want 42 (config)", session.Seed, session.SeedSource)
	}
	want := []string{catalog.DefaultSelf, "Wires", "Maze"}
	if diff := cmp.Diff(want, session.Bomb.SolvableModules()); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
	if session.Module.Name() != catalog.DefaultSelf {
		t.Fatalf("module name = %q", session.Module.Name())
	}
}

func TestNewSessionGeneratesSeed(t *testing.T) {
	session, err := NewSession(SessionConfig{}, nil, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.SeedSource != random.SeedSourceCrypto {
		t.Fatalf("seed source = %s, want crypto", session.SeedSource)
	}
}

func TestSplitNames(t *testing.T) {
	got := SplitNames(" Wires,,The Button , ")
	if diff := cmp.Diff([]string{"Wires", "The Button"}, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := SplitNames(""); got != nil {
		t.Fatalf("empty list = %v, want nil", got)
	}
}

func TestSeededSessionsReplay(t *testing.T) {
	cfg := SessionConfig{Seed: 7, Modules: []string{"Wires", "Maze"}}
	first, err := NewSession(cfg, nil, nil)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	second, err := NewSession(cfg, nil, nil)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	first.Module.Start(t.Context())
	second.Module.Start(t.Context())
	if a, b := first.Module.Status().Screen.Text, second.Module.Status().Screen.Text; a != b {
		t.Fatalf("seeded sessions differ: %q vs %q", a, b)
	}
}
