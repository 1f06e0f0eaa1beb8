// Package logger builds the zap loggers used by the wizard binary.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New returns a logger for mode ("development", "production" or "silent")
// at level. Output goes to stderr so it does not interleave with prompts.
func New(mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "silent", "nop", "off":
		return zap.NewNop(), nil
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "", "dev", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logger: unknown mode %q", mode)
	}

	if lvl := strings.TrimSpace(level); lvl != "" {
		atomic, err := zap.ParseAtomicLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		cfg.Level = atomic
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return built, nil
}
