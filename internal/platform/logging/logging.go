// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the logging environment (SONUNDRUM_LOG_*).
type Config struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Path is a file path or "stderr". The terminal front-end owns stdout, and
	// so does the stdio MCP transport.
	Path string `env:"LOG_PATH" envDefault:"stderr"`
}

// New builds a production JSON logger at the configured level.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "stderr"
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Sampling = nil
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
