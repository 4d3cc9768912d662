package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/nodebridge/internal/asset"
	"github.com/specialistvlad/nodebridge/internal/bridge"
	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/specialistvlad/nodebridge/internal/encoding"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *bridge.Registry
	protocol *encoding.Protocol
	path     *nodeid.Address
	publish  publishFunc
}

// NewApp is the constructor for the main application. Documents are written
// to outW and logs to logW, each App owning an isolated logger and registry.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := bridge.NewRegistry()
	if err := asset.Register(reg); err != nil {
		return nil, fmt.Errorf("failed to register codecs: %w", err)
	}
	logger.Debug("Codecs registered.", "types", reg.Names())

	format, err := encoding.FormatByName(cfg.Format)
	if err != nil {
		return nil, err
	}

	path := nodeid.Root()
	if cfg.Path != "" {
		if path, err = nodeid.Parse(cfg.Path); err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", cfg.Path, err)
		}
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		protocol: encoding.NewProtocol(reg, format),
		path:     path,
		publish:  defaultPublish,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *bridge.Registry {
	return a.registry
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
