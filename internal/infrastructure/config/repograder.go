package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// RepograderConfig configures the repository grading variant.
type RepograderConfig struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL, default=gemini-2.0-flash"`
	CloneDir     string `env:"CLONE_DIR,    default=cloned_repo"`
	LogLevel     string `env:"LOG_LEVEL,    default=info"`
}

// LoadRepograder reads the repograder configuration. The hosted-model API key
// has no usable default, so its absence fails startup.
func LoadRepograder(ctx context.Context) (*RepograderConfig, error) {
	var cfg RepograderConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("config: GEMINI_API_KEY must be set")
	}
	return &cfg, nil
}
