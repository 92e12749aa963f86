package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/providers"
)

// Version of the framework.
const Version = "0.1.0"

// Application is the top-level application kernel.
// It embeds the process-wide Container and a ProviderRegistry so user code
// can call app.Bind(), app.Singleton(), app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// Option configures the framework providers registered by New.
type Option func(*options)

type options struct {
	envFiles []string
	logging  providers.LoggingServiceProvider
}

// WithEnvFiles sets the .env files to load (default: ".env").
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithLogOutput overrides where the application logger writes.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logging.Output = w }
}

// New bootstraps the application on the process-wide container and
// registers the framework providers (config, then logging).
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := container.Instance()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	if err := registry.Register(&providers.ConfigServiceProvider{EnvFiles: o.envFiles}); err != nil {
		return nil, err
	}
	if err := registry.Register(&o.logging); err != nil {
		return nil, err
	}
	app.Singleton("app", app)

	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	if err := a.Providers.Boot(); err != nil {
		return err
	}
	logger := a.Logger()
	logger.Debug().Str("env", a.Environment()).Msg("application booted")
	return nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config", nil)
}

// Logger resolves the application logger from the container.
func (a *Application) Logger() zerolog.Logger {
	return container.MustResolve[zerolog.Logger](a.Container, "logger", nil)
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Config().IsLocal() }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }
func (a *Application) IsTesting() bool     { return a.Config().IsTesting() }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
