package container

import (
	"fmt"
	"reflect"
)

// ── Definitions ───────────────────────────────────────────────────────────────

// definition describes how to construct the type registered under an
// identifier. It stands in for runtime class reflection: Go cannot look up
// a type by name, list parameter names or read default values, so those
// facts are registered up front.
type definition struct {
	id          string
	constructor reflect.Value // zero Value when the type has no constructor
	params      []ParamSpec
	private     bool
	outType     reflect.Type
}

// hasConstructor reports whether the constructor may be invoked.
func (d *definition) hasConstructor() bool {
	return d.constructor.IsValid() && !d.private
}

// shell returns a zero-valued instance of the defined type without running
// any constructor.
func (d *definition) shell() (any, error) {
	switch d.outType.Kind() {
	case reflect.Ptr:
		return reflect.New(d.outType.Elem()).Interface(), nil
	case reflect.Interface:
		return nil, fmt.Errorf("%w: %s has interface type %s and no invokable constructor", ErrReflection, d.id, d.outType)
	default:
		return reflect.New(d.outType).Elem().Interface(), nil
	}
}

// DefineOption configures a definition.
type DefineOption func(*defineConfig)

type defineConfig struct {
	params  []ParamSpec
	private bool
	methods map[string][]ParamSpec
}

// Params names the constructor parameters in declared order. Parameters
// past the end of the list are named by position ("0", "1", ...).
func Params(p ...ParamSpec) DefineOption {
	return func(cfg *defineConfig) {
		cfg.params = p
	}
}

// Private marks the constructor as not publicly invokable. Resolution then
// produces a zero-valued instance without calling it.
func Private() DefineOption {
	return func(cfg *defineConfig) {
		cfg.private = true
	}
}

// Method names the parameters of a method on the defined type so that
// ResolveMethod can match explicit arguments by name.
func Method(name string, p ...ParamSpec) DefineOption {
	return func(cfg *defineConfig) {
		if cfg.methods == nil {
			cfg.methods = make(map[string][]ParamSpec)
		}
		cfg.methods[name] = p
	}
}

// ── Catalog ───────────────────────────────────────────────────────────────────

type catalog struct {
	definitions map[string]*definition

	// runtime type → method name → parameter specs
	methods map[reflect.Type]map[string][]ParamSpec
}

func newCatalog() *catalog {
	return &catalog{
		definitions: make(map[string]*definition),
		methods:     make(map[reflect.Type]map[string][]ParamSpec),
	}
}

func (cat *catalog) add(d *definition, methods map[string][]ParamSpec) error {
	for name, specs := range methods {
		if err := cat.describeMethod(d.outType, name, specs); err != nil {
			return fmt.Errorf("%s: %w", d.id, err)
		}
	}
	cat.definitions[d.id] = d
	return nil
}

func (cat *catalog) describeMethod(t reflect.Type, name string, specs []ParamSpec) error {
	m, ok := t.MethodByName(name)
	if !ok {
		return fmt.Errorf("%w: %s has no exported method %s", ErrInvalidDefinition, t, name)
	}
	params := m.Type.NumIn()
	if t.Kind() != reflect.Interface {
		params-- // receiver
	}
	if len(specs) > params {
		return fmt.Errorf("%w: %d parameter names for %s.%s which takes %d", ErrInvalidDefinition, len(specs), t, name, params)
	}
	if cat.methods[t] == nil {
		cat.methods[t] = make(map[string][]ParamSpec)
	}
	cat.methods[t][name] = specs
	return nil
}

// ── Container API ─────────────────────────────────────────────────────────────

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Define registers a constructor for id. The constructor must be a function
// with the signature func(deps...) T or func(deps...) (T, error). Defining
// an identifier again replaces the previous definition.
//
//	c.Define("App2", NewApp2, container.Params(
//	    container.Param("config"),
//	    container.Param("arg1"),
//	    container.Param("arg2").Default("none"),
//	))
func (c *Container) Define(id string, constructor any, opts ...DefineOption) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidDefinition)
	}

	val := reflect.ValueOf(constructor)
	if !val.IsValid() || val.Kind() != reflect.Func {
		return fmt.Errorf("%w: constructor for %s must be a function", ErrInvalidDefinition, id)
	}
	typ := val.Type()

	if typ.IsVariadic() {
		return fmt.Errorf("%w: constructor for %s is variadic", ErrInvalidDefinition, id)
	}
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return fmt.Errorf("%w: constructor for %s must return (T) or (T, error)", ErrInvalidDefinition, id)
	}
	if typ.NumOut() == 2 && typ.Out(1) != errorType {
		return fmt.Errorf("%w: second return value of constructor for %s must be error", ErrInvalidDefinition, id)
	}

	cfg := applyDefineOptions(opts)
	if _, err := describe(typ, cfg.params); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	d := &definition{
		id:          id,
		constructor: val,
		params:      cfg.params,
		private:     cfg.private,
		outType:     typ.Out(0),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.catalog.add(d, cfg.methods); err != nil {
		return err
	}
	c.log.Debug().Str("id", id).Str("type", d.outType.String()).Msg("type defined")
	return nil
}

// DefineType registers a type that has no constructor. prototype is any
// value of the type, typically a typed nil pointer:
//
//	c.DefineType("PHPConfig", (*PHPConfig)(nil))
//
// Resolution yields a new zero-valued instance each time.
func (c *Container) DefineType(id string, prototype any, opts ...DefineOption) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidDefinition)
	}
	t := reflect.TypeOf(prototype)
	if t == nil {
		return fmt.Errorf("%w: prototype for %s is an untyped nil", ErrInvalidDefinition, id)
	}

	cfg := applyDefineOptions(opts)
	if len(cfg.params) > 0 {
		return fmt.Errorf("%w: %s has no constructor to name parameters for", ErrInvalidDefinition, id)
	}

	d := &definition{id: id, outType: t}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.catalog.add(d, cfg.methods); err != nil {
		return err
	}
	c.log.Debug().Str("id", id).Str("type", t.String()).Msg("type defined")
	return nil
}

// DescribeMethod names the parameters of a method on the runtime type of
// prototype, for types that were not registered through Define.
func (c *Container) DescribeMethod(prototype any, method string, p ...ParamSpec) error {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return fmt.Errorf("%w: prototype is an untyped nil", ErrInvalidDefinition)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.describeMethod(t, method, p)
}

// Defined reports whether a definition exists for id.
func (c *Container) Defined(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.catalog.definitions[id]
	return ok
}

func (c *Container) definition(id string) (*definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.catalog.definitions[id]
	return d, ok
}

func (c *Container) methodSpecs(t reflect.Type, name string) []ParamSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catalog.methods[t][name]
}

func applyDefineOptions(opts []DefineOption) defineConfig {
	var cfg defineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Register defines constructor under Key[T]().
//
//	container.Register[*Mailer](c, NewMailer, container.Params(container.Param("from")))
func Register[T any](c *Container, constructor any, opts ...DefineOption) error {
	return c.Define(Key[T](), constructor, opts...)
}

// RegisterType defines T, which has no constructor, under Key[T]().
//
//	container.RegisterType[*PHPConfig](c)
func RegisterType[T any](c *Container, opts ...DefineOption) error {
	var zero T
	prototype := any(zero)
	if prototype == nil {
		// T is an interface type: there is nothing to construct.
		return fmt.Errorf("%w: %s is an interface type", ErrInvalidDefinition, Key[T]())
	}
	return c.DefineType(Key[T](), prototype, opts...)
}
