// Package container provides a Laravel-style IoC (Inversion of Control)
// container for Go.
//
// # Overview
//
// The container maps identifiers to targets and builds defined types,
// injecting their constructor and method parameters. An identifier is any
// string; by convention it is an interface or type name, and Key/TypeKey
// produce the package-qualified name of a Go type.
//
// Go cannot look types up by name or read parameter names and default
// values at runtime, so types are defined up front with their constructor
// and parameter names. Everything else (parameter types, whether they are
// builtins or references, the call itself) comes from reflection.
//
// # Getting the container
//
//	c := container.Instance() // same container on every call
//	c.Flush()                 // drop every registration, keep the container
//
// # Bindings
//
//	// Laravel: $app->bind(ConfigInterface::class, PHPConfig::class)
//	c.Bind("ConfigInterface", "PHPConfig")
//
//	// Laravel: $app->instance(PHPConfig::class, $config)
//	c.Singleton("PHPConfig", &PHPConfig{})
//
//	c.Has("ConfigInterface")       // true
//	target, _ := c.Get("ConfigInterface") // "PHPConfig"
//
// # Definitions
//
//	c.DefineType("PHPConfig", (*PHPConfig)(nil)) // no constructor
//
//	c.Define("App2", NewApp2, container.Params(
//	    container.Param("config").Ref("ConfigInterface"),
//	    container.Param("arg1"),
//	    container.Param("arg2").Default("none"),
//	))
//
// # Resolving
//
//	// Laravel: $app->make(App2::class, ['arg1' => 'value1'])
//	app2, err := c.Resolve("App2", container.Args{"arg1": "value1"})
//
//	// Generic (no type assertion required)
//	app2, err := container.Resolve[*App2](c, "App2", nil)
//
// Each parameter is filled from, in order: an explicit argument with its
// name, a contextual binding, an injected instance of its reference type,
// its default. Builtin parameters (strings, numbers, slices, ...) are never
// injected.
//
// # Method injection
//
//	// Laravel: $app->call([$app1, 'handle'])
//	_, err := c.ResolveMethod(app1, "Handle", nil)
//
// # Contextual Binding
//
//	// Laravel: $app->when(App1::class)->needs(ConfigInterface::class)->give(YAMLConfig::class)
//	c.When("App1").Needs("ConfigInterface").Give("YAMLConfig")
//	c.When("App2").Needs("$arg1").GiveValue("value1")
//
// # Service Providers
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
