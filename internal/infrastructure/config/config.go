package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AllowedExtensions is the comma-separated upload allow-list, without
	// leading dots.
	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS, default=py"`
	UploadDir         string   `env:"UPLOAD_DIR,  default=uploads"`
	ResultsDir        string   `env:"RESULTS_DIR, default=results"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Ollama OllamaConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=credentials"`
}

// RedisConfig configures the optional grading response cache. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type OllamaConfig struct {
	BaseURL string `env:"OLLAMA_URL,   default=http://localhost:11434"`
	Model   string `env:"OLLAMA_MODEL, default=mistral"`
}

// Load reads configuration from environment variables using go-envconfig.
// The JWT signing secret is mandatory: without it no issued token could ever
// be verified, so startup fails instead.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must be set")
	}
	if len(cfg.AllowedExtensions) == 0 {
		return nil, fmt.Errorf("config: ALLOWED_EXTENSIONS must not be empty")
	}
	return &cfg, nil
}
