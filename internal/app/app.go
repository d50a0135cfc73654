package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/config"
	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/engine"
	"github.com/specialistvlad/codeshape/internal/executor"
	"github.com/specialistvlad/codeshape/internal/query"
	"github.com/specialistvlad/codeshape/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *config.Config
	registry *registry.Registry
	engine   *engine.Engine
	executor *executor.Executor
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Log output goes to logW. Without modules every core module is registered.
func NewApp(logW io.Writer, cfg *config.Config, modules ...registry.Module) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	// A registry that fails validation is a programming error, not a user one.
	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	eval, err := query.New(cfg.QueryDialect)
	if err != nil {
		return nil, errors.Wrap(err, "create query evaluator")
	}

	return &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
		engine:   engine.New(reg, eval),
		executor: executor.New(reg),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
