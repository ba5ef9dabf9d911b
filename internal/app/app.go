package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/plugboard-dev/plugboard/internal/di"
	"github.com/plugboard-dev/plugboard/internal/extension"
	"github.com/plugboard-dev/plugboard/internal/logging"
	"github.com/plugboard-dev/plugboard/internal/plugin"
	"github.com/plugboard-dev/plugboard/internal/router"
)

// Injector ids the host binds before any module registers.
const (
	RegistryID = "registry"
	LoggerID   = "logger"
)

// Config holds what an App needs to start.
type Config struct {
	PluginsDir string // empty skips plugin loading
	LogLevel   string
	LogFormat  string
	Verbose    bool
	Version    string // host version checked against plugin constraints
}

// Module is a built-in component. Register contributes to extension points
// and binds injector ids; it must not block. A returned error aborts New.
type Module interface {
	Register(reg *extension.Registry, inj *di.Injector) error
}

// App encapsulates the host's registry, injector and loaded plugins.
type App struct {
	ctx       context.Context
	logger    *slog.Logger
	registry  *extension.Registry
	injector  *di.Injector
	installed []*plugin.Installed
	router    *router.Router
	started   bool
}

// New builds an App logging to outW. Built-in modules register first, in
// order, followed by the plugins found under cfg.PluginsDir. With no modules
// given the core modules are used.
func New(ctx context.Context, outW io.Writer, cfg *Config, modules ...Module) (*App, error) {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = logging.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	inj := di.New()
	inj.SetLogger(logger)
	reg := extension.NewRegistry(
		extension.WithLogger(logger),
		extension.WithVerbose(cfg.Verbose),
		extension.WithResolver(di.Resolver(inj)),
	)
	inj.SetSingleton(RegistryID, reg)
	inj.SetSingleton(LoggerID, logger)

	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(reg, inj); err != nil {
			return nil, fmt.Errorf("registering module %T: %w", mod, err)
		}
	}
	logger.Debug("All built-in modules registered.", "count", len(modules))

	a := &App{
		ctx:      ctx,
		logger:   logger,
		registry: reg,
		injector: inj,
	}

	if cfg.PluginsDir != "" {
		installed, err := plugin.LoadAll(ctx, cfg.PluginsDir, cfg.Version, reg, inj)
		if err != nil {
			return nil, fmt.Errorf("loading plugins: %w", err)
		}
		a.installed = installed
		logger.Debug("Plugins loaded.", "dir", cfg.PluginsDir, "count", len(installed))
	}

	return a, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// Registry returns the application's extension registry.
func (a *App) Registry() *extension.Registry { return a.registry }

// Injector returns the application's injector.
func (a *App) Injector() *di.Injector { return a.injector }

// Plugins returns the installed plugins in install order.
func (a *App) Plugins() []*plugin.Installed { return a.installed }

// Context returns the application context carrying its logger.
func (a *App) Context() context.Context { return a.ctx }
