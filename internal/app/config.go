package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/nodebridge/internal/encoding"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "NODEBRIDGE_"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string `env:"PATHS" envSeparator:","` // .hcl/.lua files or directories
	// Path addresses the wrapper value inside each document; empty means root.
	Path   string            `env:"PATH"`
	Format string            `env:"FORMAT" envDefault:"json"`
	Vars   map[string]string `env:"VARS"` // exposed to HCL as var.*

	Workers   int    `env:"WORKERS" envDefault:"4"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	Publish PublishConfig `envPrefix:"PUBLISH_"`
}

// PublishConfig configures the optional socket.io publisher. Publishing is
// disabled while URL is empty.
type PublishConfig struct {
	URL                string        `env:"URL"`
	Namespace          string        `env:"NAMESPACE" envDefault:"/"`
	Event              string        `env:"EVENT" envDefault:"document"`
	AckEvent           string        `env:"ACK_EVENT"`
	Timeout            time.Duration `env:"TIMEOUT" envDefault:"10s"`
	InsecureSkipVerify bool          `env:"INSECURE_SKIP_VERIFY"`
}

// LoadEnv reads a Config from environment variables prefixed with
// EnvPrefix. A nil environ reads the process environment.
func LoadEnv(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("Paths is a required configuration field and cannot be empty")
	}
	if cfg.Path != "" {
		if _, err := nodeid.Parse(cfg.Path); err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", cfg.Path, err)
		}
	}
	if _, err := encoding.FormatByName(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		return nil, errors.New("Workers must be at least 1")
	}
	if cfg.Publish.URL != "" && cfg.Publish.Event == "" {
		return nil, errors.New("Publish.Event is required when Publish.URL is set")
	}

	return &cfg, nil
}
