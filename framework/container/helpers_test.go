package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared test types and constructors used across test files.

type ConfigInterface interface {
	Format() string
}

type phpConfig struct{ Path string }

func (c *phpConfig) Format() string { return "php" }

type yamlConfig struct{ Path string }

func (c *yamlConfig) Format() string { return "yaml" }

// app1 takes its config through both the constructor and Handle.
type app1 struct {
	Config       ConfigInterface
	MethodConfig ConfigInterface
}

func newApp1(config ConfigInterface) *app1 {
	return &app1{Config: config}
}

func (a *app1) Handle(config ConfigInterface) {
	a.MethodConfig = config
}

// app2 mixes an injected dependency with two primitives.
type app2 struct {
	Config ConfigInterface
	Arg1   string
	Arg2   string
}

func newApp2(config ConfigInterface, arg1, arg2 string) *app2 {
	return &app2{Config: config, Arg1: arg1, Arg2: arg2}
}

var errBoom = errors.New("boom")

// testContainer returns an isolated container with the config types and
// both apps defined, and ConfigInterface bound to PHPConfig.
func testContainer(t *testing.T) *Container {
	t.Helper()
	c := newContainer()

	require.NoError(t, c.DefineType("PHPConfig", (*phpConfig)(nil)))
	require.NoError(t, c.DefineType("YAMLConfig", (*yamlConfig)(nil)))
	require.NoError(t, c.Define("App1", newApp1,
		Params(Param("config").Ref("ConfigInterface")),
		Method("Handle", Param("config").Ref("ConfigInterface")),
	))
	require.NoError(t, c.Define("App2", newApp2, Params(
		Param("config").Ref("ConfigInterface"),
		Param("arg1"),
		Param("arg2"),
	)))
	c.Bind("ConfigInterface", "PHPConfig")
	return c
}

// mustResolve fails the test if resolution fails.
func mustResolve[T any](t *testing.T, c *Container, id string, args Args) T {
	t.Helper()
	v, err := Resolve[T](c, id, args)
	require.NoError(t, err, "Resolve(%q)", id)
	return v
}
