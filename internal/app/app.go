package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/bbdeps/internal/config"
	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/topologystore"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	platforms  []*platformGraph // declaration order
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the
// workspace, builds and finalizes one graph per platform, and returns a ready
// App. Report output goes to outW, logs to logW.
//
// A failure to load the workspace is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, cfg, loader)
	if err != nil {
		panic(fmt.Errorf("failed to load workspace: %w", err))
	}
	logger.Debug("Workspace loaded.", "platforms", model.Names())

	platforms, err := buildPlatforms(ctx, model)
	if err != nil {
		panic(fmt.Errorf("failed to build dependency graphs: %w", err))
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		model:     model,
		platforms: platforms,
	}
}

// loadModel reads the workspace description selected by cfg.
func loadModel(ctx context.Context, cfg *Config, loader config.Loader) (*config.Model, error) {
	var model *config.Model
	if cfg.ConfigPath != "" {
		m, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		model = m
	} else {
		model = config.FromManifestDir(cfg.ManifestDir, nil)
	}

	if len(cfg.Finished) > 0 {
		for _, p := range model.Platforms {
			p.Finished = cfg.Finished
		}
	}
	if len(model.Platforms) == 0 {
		ctxlog.FromContext(ctx).Warn("Workspace declares no platforms.")
	}
	return model, nil
}

// Graph returns the finalized graph of platform.
func (a *App) Graph(platform string) (topologystore.Graph, bool) {
	p, ok := a.platform(platform)
	if !ok {
		return nil, false
	}
	return p.graph, true
}

// Platforms returns the platform names in declaration order.
func (a *App) Platforms() []string {
	names := make([]string, 0, len(a.platforms))
	for _, p := range a.platforms {
		names = append(names, p.name)
	}
	return names
}

func (a *App) platform(name string) (*platformGraph, bool) {
	for _, p := range a.platforms {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}
