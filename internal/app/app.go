package app

import (
	"io"
	"log/slog"

	"github.com/vk/cartograph/internal/definition"
	"github.com/vk/cartograph/internal/notifiers/discord"
	"github.com/vk/cartograph/internal/remotes/rsync"
	"github.com/vk/cartograph/internal/sources/gsheet"
)

// coreModules are the extension variants shipped with the binary.
var coreModules = []definition.Module{
	gsheet.Module{},
	rsync.Module{},
	discord.Module{},
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	regs   *definition.Registries
	cfg    *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registries.
// Passing modules overrides the core variant set; tests use this.
func NewApp(outW io.Writer, cfg *Config, modules ...definition.Module) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	regs := definition.NewRegistries()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(regs)
	}
	logger.Debug("Extension variants registered.", "count", len(modules))

	return &App{
		outW:   outW,
		logger: logger,
		regs:   regs,
		cfg:    cfg,
	}
}

// Registries returns the application's capability tables. This is
// primarily for testing.
func (a *App) Registries() *definition.Registries {
	return a.regs
}
