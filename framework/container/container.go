package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Args maps parameter names to explicit argument values. Explicit arguments
// always win over injection and defaults.
type Args map[string]any

// binding is a registry entry. A shared binding holds a live instance; any
// other binding points at another identifier.
type binding struct {
	target   string
	instance any
	shared   bool
}

func (b binding) value() any {
	if b.shared {
		return b.instance
	}
	return b.target
}

// Indirection selects how far identifier bindings are followed.
type Indirection int

const (
	// Chase follows identifier bindings until a live instance or an
	// unbound identifier is reached.
	Chase Indirection = iota

	// SingleHop substitutes at most one identifier binding.
	SingleHop
)

// String returns the configuration name of the mode.
func (i Indirection) String() string {
	switch i {
	case Chase:
		return "chase"
	case SingleHop:
		return "single"
	default:
		return "unknown"
	}
}

// ParseIndirection maps a configuration name to a mode.
func ParseIndirection(s string) (Indirection, error) {
	switch s {
	case "", "chase":
		return Chase, nil
	case "single":
		return SingleHop, nil
	default:
		return Chase, fmt.Errorf("unknown indirection mode %q", s)
	}
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container. It maps identifiers to targets and
// constructs defined types, injecting their dependencies.
//
// Obtain the process-wide container with Instance and pass it by reference
// to whatever needs it.
type Container struct {
	mu sync.RWMutex

	id uuid.UUID

	// abstract → binding
	bindings map[string]binding

	// abstract → definition, plus method parameter names
	catalog *catalog

	// contextual: when[concrete][need] = entry
	contextual map[string]map[string]contextualEntry

	// loads a deferred provider for an identifier; set by ProviderRegistry
	deferred func(id string) (bool, error)

	indirection Indirection
	log         zerolog.Logger
}

var (
	instance     *Container
	instanceOnce sync.Once
)

// Instance returns the process-wide container, creating it on first use.
// Every call returns the same container.
//
//	c := container.Instance()
//	c.Bind("ConfigInterface", "PHPConfig")
func Instance() *Container {
	instanceOnce.Do(func() {
		instance = newContainer()
	})
	return instance
}

func newContainer() *Container {
	c := &Container{id: uuid.New()}
	c.reset()
	return c
}

// reset drops every registration and option. Callers hold c.mu or own c
// exclusively.
func (c *Container) reset() {
	c.bindings = make(map[string]binding)
	c.catalog = newCatalog()
	c.contextual = make(map[string]map[string]contextualEntry)
	c.deferred = nil
	c.indirection = Chase
	c.log = zerolog.Nop()

	// The container is resolvable like any other dependency.
	c.bindings["container"] = binding{instance: c, shared: true}
	c.bindings[Key[*Container]()] = binding{instance: c, shared: true}
}

// Flush resets the container to its freshly created state: bindings,
// definitions, contextual bindings, the deferred-provider hook and options
// are all dropped. The container keeps its identity and ID.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// ID identifies this container in log output.
func (c *Container) ID() uuid.UUID { return c.id }

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures the container.
type Option func(*Container)

// WithLogger sets the logger used for debug-level resolution traces. The
// default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) {
		c.log = l.With().Str("container", c.id.String()).Logger()
	}
}

// WithIndirection sets how identifier bindings are followed. The default is
// Chase.
func WithIndirection(mode Indirection) Option {
	return func(c *Container) {
		c.indirection = mode
	}
}

// Configure applies opts to the container and returns it.
func (c *Container) Configure(opts ...Option) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind points id at another identifier, replacing any previous binding.
// The target is not checked until resolution.
//
//	c.Bind("ConfigInterface", "PHPConfig")
func (c *Container) Bind(id, target string) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[id] = binding{target: target}
	c.log.Debug().Str("id", id).Str("target", target).Msg("bound")
	return c
}

// Singleton registers a live instance under id, replacing any previous
// binding. Resolving id returns this exact instance.
//
//	c.Singleton("PHPConfig", &PHPConfig{})
func (c *Container) Singleton(id string, instance any) *Container {
	if instance == nil {
		panic(fmt.Sprintf("container: singleton [%s] registered with a nil instance", id))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[id] = binding{instance: instance, shared: true}
	c.log.Debug().Str("id", id).Str("type", fmt.Sprintf("%T", instance)).Msg("singleton registered")
	return c
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Has reports whether id has a binding. It neither follows indirection nor
// constructs anything.
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[id]
	return ok
}

// IsShared reports whether id is bound to a live instance through Singleton.
func (c *Container) IsShared(id string) bool {
	b, ok := c.lookup(id)
	return ok && b.shared
}

// Get returns the raw binding for id: the target identifier for Bind, the
// instance for Singleton.
func (c *Container) Get(id string) (any, error) {
	b, ok := c.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b.value(), nil
}

func (c *Container) lookup(id string) (binding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bindings[id]
	return b, ok
}

// Bindings returns the bound identifiers in sorted order (for debugging).
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns an instance for id. Bindings are followed first; a
// singleton is returned as is, otherwise the resulting identifier is
// constructed from its definition with dependencies injected. args override
// constructor parameters by name.
//
//	app2, err := c.Resolve("App2", container.Args{"arg1": "value1"})
func (c *Container) Resolve(id string, args Args) (any, error) {
	return (&instanceResolver{container: c, id: id, args: args}).instance()
}

// ResolveMethod calls the named method on instance, injecting its
// parameters the same way constructor parameters are injected, and returns
// its result.
//
//	_, err := c.ResolveMethod(app1, "Handle", nil)
func (c *Container) ResolveMethod(instance any, method string, args Args) (any, error) {
	return (&methodInvoker{container: c, instance: instance, method: method, args: args}).value()
}

func (c *Container) mode() Indirection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indirection
}

func (c *Container) logger() *zerolog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l := c.log
	return &l
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, the identifier
// under which reference parameters of that type are injected. Pointers are
// stripped, so *Foo and Foo share a key.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "main.UserRepository"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	return typeKey(t)
}

// Key returns TypeKey for T. It also works for interface types:
//
//	c.Bind(container.Key[ConfigInterface](), container.Key[*PHPConfig]())
func Key[T any]() string {
	return typeKey(reflect.TypeOf((*T)(nil)).Elem())
}

func typeKey(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Container.Resolve and type-asserts
// the result.
//
//	app, err := container.Resolve[*App1](c, "App1", nil)
func Resolve[T any](c *Container, id string, args Args) (T, error) {
	var zero T
	instance, err := c.Resolve(id, args)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] resolved to %T, not %T", ErrTypeMismatch, id, instance, zero)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Meant for bootstrap code
// where a missing dependency is fatal.
func MustResolve[T any](c *Container, id string, args Args) T {
	typed, err := Resolve[T](c, id, args)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%s]: %v", id, err))
	}
	return typed
}
