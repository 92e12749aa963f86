package container

import (
	"fmt"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the definitions and bindings of one part of an
// application.
//
// Register is called as soon as the provider is added to a registry (or, for
// deferred providers, on first resolution of one of its identifiers). Boot
// is called after all providers have been registered, making it safe to
// resolve other bindings there.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    app.Bind("ConfigInterface", "PHPConfig")
//	    return app.DefineType("PHPConfig", (*PHPConfig)(nil))
//	}
type ServiceProvider interface {
	// Register defines types and binds identifiers.
	// Do NOT resolve other bindings here; use Boot() for that.
	Register(app *Container) error

	// Boot is called after all providers are registered.
	Boot(app *Container) error

	// Provides returns the identifiers this provider binds or defines.
	// Only deferred providers need it.
	Provides() []string

	// IsDeferred returns true if this provider should be registered lazily,
	// on the first resolution of one of its Provides() identifiers.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) error { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	mu         sync.Mutex
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // identifier → provider
	booted     bool
	registered map[ServiceProvider]bool
	loading    map[ServiceProvider]bool // Register() in progress
}

// NewProviderRegistry creates a registry bound to app and installs the
// deferred-provider hook on it.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	r := &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
		loading:    make(map[ServiceProvider]bool),
	}
	app.mu.Lock()
	app.deferred = r.loadDeferred
	app.mu.Unlock()
	return r
}

// Register adds a provider and calls its Register() method (unless
// deferred). Adding the same provider twice is a no-op. A provider whose
// Register() fails is not recorded and may be added again.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] || r.loading[provider] {
		r.mu.Unlock()
		return nil
	}

	if provider.IsDeferred() {
		r.registered[provider] = true
		for _, id := range provider.Provides() {
			r.deferred[id] = provider
		}
		r.mu.Unlock()
		r.app.logger().Debug().Strs("provides", provider.Provides()).Msg("deferred provider added")
		return nil
	}
	r.loading[provider] = true
	r.mu.Unlock()

	err := provider.Register(r.app)

	r.mu.Lock()
	delete(r.loading, provider)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("registering %T: %w", provider, err)
	}
	r.registered[provider] = true
	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	// A provider added after Boot is booted immediately.
	if booted {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("booting %T: %w", provider, err)
		}
	}
	return nil
}

// loadDeferred registers (and boots, if the registry has booted) the
// deferred provider for id. It reports whether a provider was loaded. On
// failure the provider stays deferred and the next resolution retries it.
func (r *ProviderRegistry) loadDeferred(id string) (bool, error) {
	r.mu.Lock()
	provider, ok := r.deferred[id]
	if !ok || r.loading[provider] {
		r.mu.Unlock()
		return false, nil
	}
	r.loading[provider] = true
	booted := r.booted
	r.mu.Unlock()

	r.app.logger().Debug().Str("id", id).Msg("loading deferred provider")

	err := provider.Register(r.app)

	r.mu.Lock()
	delete(r.loading, provider)
	if err == nil {
		for _, abs := range provider.Provides() {
			if r.deferred[abs] == provider {
				delete(r.deferred, abs)
			}
		}
	}
	r.mu.Unlock()

	if err != nil {
		return false, fmt.Errorf("registering deferred %T: %w", provider, err)
	}
	if booted {
		if err := provider.Boot(r.app); err != nil {
			return false, fmt.Errorf("booting deferred %T: %w", provider, err)
		}
	}
	return true, nil
}

// Boot calls Boot() on all eager providers, in registration order.
// Must be called after ALL providers have been registered; later calls are
// no-ops.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	providers := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range providers {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("booting %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
