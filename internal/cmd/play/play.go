// Package play parses the terminal game flags and runs Simon Sonundrum on a
// simulated bomb.
package play

import (
	"context"
	"errors"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/sonundrum/internal/platform/cmd"
	"github.com/louisbranch/sonundrum/internal/platform/logging"
	"github.com/louisbranch/sonundrum/internal/services/module"
	"github.com/louisbranch/sonundrum/internal/ui/tui"
)

// Config holds play command configuration.
type Config struct {
	Session module.SessionConfig
	// The terminal owns stdout and stderr, so logs default to a file.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogPath  string `env:"LOG_PATH" envDefault:"sonundrum.log"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.Int64Var(&cfg.Session.Seed, "seed", cfg.Session.Seed, "rule seed, 0 for a random one")
	fs.Func("modules", "comma separated modules on the bomb besides Simon Sonundrum", func(v string) error {
		cfg.Session.Modules = module.SplitNames(v)
		return nil
	})
	fs.DurationVar(&cfg.Session.PollInterval, "poll-interval", cfg.Session.PollInterval, "how often the bomb is polled")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogPath, "log-path", cfg.LogPath, "log file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if len(cfg.Session.Modules) == 0 {
		return Config{}, errors.New("at least one other module is required")
	}
	return cfg, nil
}

// Run plays one bomb in the terminal until the player quits or ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlay, func(ctx context.Context) error {
		logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Path: cfg.LogPath})
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		session, err := module.NewSession(cfg.Session, logger, nil)
		if err != nil {
			return err
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- session.Module.Run(runCtx) }()

		program := tea.NewProgram(tui.New(runCtx, session.Module, session.Bomb), tea.WithContext(runCtx), tea.WithAltScreen())
		_, err = program.Run()
		cancel()
		if runErr := <-done; runErr != nil {
			logger.Warn("module run", zap.Error(runErr))
		}
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run terminal: %w", err)
		}
		return nil
	})
}
