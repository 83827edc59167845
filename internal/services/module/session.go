package module

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/sonundrum/internal/core/catalog"
	"github.com/louisbranch/sonundrum/internal/random"
	"github.com/louisbranch/sonundrum/internal/services/bomb"
)

// SessionConfig describes a simulated bomb and the Simon Sonundrum on it.
type SessionConfig struct {
	// Seed replays a session when non-zero.
	Seed int64 `env:"SEED"`
	// Modules are the other modules on the bomb. Names may repeat.
	Modules []string `env:"MODULES" envSeparator:"," envDefault:"Wires,The Button,Keypad,Maze"`
	// Ignored modules never count towards Simon's progress.
	Ignored      []string      `env:"IGNORED" envSeparator:"," envDefault:"Simon Sonundrum"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"100ms"`
}

// Session is a bomb with one Simon Sonundrum on it.
type Session struct {
	Bomb       *bomb.Bomb
	Module     *Module
	Seed       int64
	SeedSource random.SeedSource
}

// NewSession builds the bomb and its module. The module is not started.
func NewSession(cfg SessionConfig, logger *zap.Logger, metrics *Metrics) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed, source, err := random.ResolveSeed(cfg.Seed, nil)
	if err != nil {
		return nil, err
	}

	modules := []string{catalog.DefaultSelf}
	modules = append(modules, SplitNames(strings.Join(cfg.Modules, ","))...)
	b := bomb.New(modules...)

	m, err := New(Options{
		Bomb:         b,
		Seed:         seed,
		Ignored:      cfg.Ignored,
		Logger:       logger,
		Metrics:      metrics,
		PollInterval: cfg.PollInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("new module: %w", err)
	}
	logger.Info("bomb ready",
		zap.Int64("seed", seed),
		zap.String("seed_source", string(source)),
		zap.Strings("modules", modules),
	)
	return &Session{Bomb: b, Module: m, Seed: seed, SeedSource: source}, nil
}

// SplitNames splits a comma separated list of module names, dropping blanks.
func SplitNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
