package providers

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/logging"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// the environment, and registers it in the container.
//
// Bound identifiers:
//   - "config"                 → *config.Config
//   - container.Key[*config.Config]() → the same instance
//
// It also applies the configured indirection mode to the container.
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	cfg, err := config.Load(p.EnvFiles...)
	if err != nil {
		return err
	}

	mode, err := container.ParseIndirection(cfg.Container.Indirection)
	if err != nil {
		return fmt.Errorf("CONTAINER_INDIRECTION: %w", err)
	}

	app.Configure(container.WithIndirection(mode))
	app.Singleton("config", cfg)
	app.Singleton(container.Key[*config.Config](), cfg)
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the application logger from "config" and
// hands a component logger to the container for resolution traces.
//
// Bound identifiers:
//   - "logger" → zerolog.Logger
//
// Must be registered after ConfigServiceProvider.
type LoggingServiceProvider struct {
	container.BaseProvider
	Output io.Writer // default: os.Stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](app, "config", nil)
	if err != nil {
		return fmt.Errorf("logging needs config: %w", err)
	}

	log := logging.New(cfg.Log, p.Output)
	app.Singleton("logger", log)
	app.Configure(container.WithLogger(logging.Component(log, "container")))
	return nil
}

func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	log, err := container.Resolve[zerolog.Logger](app, "logger", nil)
	if err != nil {
		return err
	}
	log.Debug().Str("container", app.ID().String()).Int("bindings", len(app.Bindings())).Msg("container booted")
	return nil
}
