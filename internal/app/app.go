package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/geounits/internal/config"
	"github.com/vk/geounits/internal/ctxlog"
	"github.com/vk/geounits/internal/units"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *config.Model
	regs   *units.Registries
}

// NewApp loads every worksheet, then builds and seals one set of operator
// registries from the core rules plus the worksheets' rules. The App's
// registries are isolated from the process default.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logW := cfg.LogOutput
	if logW == nil {
		logW = outW
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.Paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load worksheets: %w", err)
	}
	logger.Debug("Worksheets loaded and translated into unified model.", "sheets", len(model.Sheets))

	regs, err := units.NewRegistries(units.CoreRules, model.RuleModule())
	if err != nil {
		return nil, fmt.Errorf("failed to build operator registries: %w", err)
	}
	logger.Debug("Operator registries sealed.", "rules", len(regs.Rules()))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		model:  model,
		regs:   regs,
	}, nil
}

// Registries returns the application's sealed operator registries.
func (a *App) Registries() *units.Registries {
	return a.regs
}

// Model returns the loaded worksheet model.
func (a *App) Model() *config.Model {
	return a.model
}
