// Package mcp parses MCP command flags and serves a simulated bomb over stdio
// or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/sonundrum/internal/platform/cmd"
	"github.com/louisbranch/sonundrum/internal/platform/logging"
	mcpservice "github.com/louisbranch/sonundrum/internal/services/mcp/service"
	"github.com/louisbranch/sonundrum/internal/services/module"
)

// Config holds MCP command configuration.
type Config struct {
	Session   module.SessionConfig
	Log       logging.Config
	HTTPAddr  string `env:"MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
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
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the bomb, starts its module and serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		logger, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		session, err := module.NewSession(cfg.Session, logger, module.NewMetrics(registry))
		if err != nil {
			return err
		}
		server, err := mcpservice.New(session.Module, session.Bomb)
		if err != nil {
			return fmt.Errorf("new mcp server: %w", err)
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- session.Module.Run(runCtx) }()

		err = server.Run(runCtx, mcpservice.Config{
			Transport: mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Gatherer:  registry,
		})
		cancel()
		if runErr := <-done; runErr != nil {
			logger.Warn("module run", zap.Error(runErr))
		}
		return err
	})
}
