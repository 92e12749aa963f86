package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Resolve: bindings ─────────────────────────────────────────────────────────

func TestResolve_TransitiveInjection(t *testing.T) {
	c := testContainer(t)

	app := mustResolve[*app1](t, c, "App1", nil)
	require.NotNil(t, app.Config)
	assert.IsType(t, &phpConfig{}, app.Config)
}

func TestResolve_RebindingOverwrites(t *testing.T) {
	c := testContainer(t)
	c.Bind("ConfigInterface", "PHPConfig")
	c.Bind("ConfigInterface", "YAMLConfig")

	cfg := mustResolve[ConfigInterface](t, c, "ConfigInterface", nil)
	assert.IsType(t, &yamlConfig{}, cfg)
	assert.Equal(t, "yaml", cfg.Format())
}

func TestResolve_SingletonShortCircuit(t *testing.T) {
	c := testContainer(t)
	cfg := &phpConfig{Path: "shared"}
	c.Singleton("PHPConfig", cfg)

	t.Run("direct", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			got, err := c.Resolve("PHPConfig", nil)
			require.NoError(t, err)
			assert.Same(t, cfg, got)
		}
	})

	t.Run("through a binding", func(t *testing.T) {
		got, err := c.Resolve("ConfigInterface", nil)
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})

	t.Run("injected", func(t *testing.T) {
		a := mustResolve[*app1](t, c, "App1", nil)
		b := mustResolve[*app1](t, c, "App1", nil)
		assert.NotSame(t, a, b)
		assert.Same(t, cfg, a.Config)
		assert.Same(t, cfg, b.Config)
	})

	t.Run("explicit args are ignored", func(t *testing.T) {
		got, err := c.Resolve("PHPConfig", Args{"path": "other"})
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})
}

func TestResolve_SingletonOverridesDefinitionOfSameID(t *testing.T) {
	c := testContainer(t)
	app := &app1{}
	c.Singleton("App1", app)

	assert.Same(t, app, mustResolve[*app1](t, c, "App1", nil))
}

func TestResolve_Chase(t *testing.T) {
	t.Run("follows every hop", func(t *testing.T) {
		c := testContainer(t)
		c.Bind("ConfigInterface", "Config")
		c.Bind("Config", "YAMLConfig")

		cfg := mustResolve[ConfigInterface](t, c, "ConfigInterface", nil)
		assert.IsType(t, &yamlConfig{}, cfg)
	})

	t.Run("stops at a singleton further down", func(t *testing.T) {
		c := testContainer(t)
		cfg := &yamlConfig{}
		c.Bind("ConfigInterface", "Config")
		c.Singleton("Config", cfg)

		got, err := c.Resolve("ConfigInterface", nil)
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})

	t.Run("self binding ends the chain", func(t *testing.T) {
		c := testContainer(t)
		c.Bind("PHPConfig", "PHPConfig")

		cfg := mustResolve[ConfigInterface](t, c, "PHPConfig", nil)
		assert.IsType(t, &phpConfig{}, cfg)
	})

	t.Run("cycle is an error", func(t *testing.T) {
		c := testContainer(t)
		c.Bind("A", "B").Bind("B", "C").Bind("C", "A")

		_, err := c.Resolve("A", nil)
		require.ErrorIs(t, err, ErrCircularBinding)
	})
}

func TestResolve_SingleHop(t *testing.T) {
	t.Run("substitutes one binding only", func(t *testing.T) {
		c := testContainer(t).Configure(WithIndirection(SingleHop))
		c.Bind("ConfigInterface", "PHPConfig")
		c.Bind("PHPConfig", "YAMLConfig")

		cfg := mustResolve[ConfigInterface](t, c, "ConfigInterface", nil)
		assert.IsType(t, &phpConfig{}, cfg)
	})

	t.Run("does not look up the substituted identifier", func(t *testing.T) {
		c := testContainer(t).Configure(WithIndirection(SingleHop))
		shared := &phpConfig{}
		c.Singleton("PHPConfig", shared)

		got, err := c.Resolve("ConfigInterface", nil)
		require.NoError(t, err)
		assert.NotSame(t, shared, got)
		assert.IsType(t, &phpConfig{}, got)
	})

	t.Run("two hops to an undefined identifier fail", func(t *testing.T) {
		c := testContainer(t).Configure(WithIndirection(SingleHop))
		c.Bind("ConfigInterface", "Config")
		c.Bind("Config", "YAMLConfig")

		_, err := c.Resolve("ConfigInterface", nil)
		require.ErrorIs(t, err, ErrReflection)
	})
}

func TestResolve_UnknownType(t *testing.T) {
	c := newContainer()

	_, err := c.Resolve("Nope", nil)
	require.ErrorIs(t, err, ErrReflection)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Nope")
}

func TestResolve_UnknownBindingTarget(t *testing.T) {
	c := newContainer()
	c.Bind("ConfigInterface", "Missing")

	_, err := c.Resolve("ConfigInterface", nil)
	require.ErrorIs(t, err, ErrReflection)
	assert.Contains(t, err.Error(), "Missing")
}

// ── Resolve: construction ─────────────────────────────────────────────────────

func TestResolve_NoConstructor(t *testing.T) {
	c := testContainer(t)

	a := mustResolve[*phpConfig](t, c, "PHPConfig", nil)
	b := mustResolve[*phpConfig](t, c, "PHPConfig", nil)

	assert.Equal(t, &phpConfig{}, a)
	assert.NotSame(t, a, b, "each resolution builds a new shell")
}

func TestResolve_ValueTypeShell(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.DefineType("Point", phpConfig{}))

	got, err := c.Resolve("Point", nil)
	require.NoError(t, err)
	assert.Equal(t, phpConfig{}, got)
}

func TestResolve_PrivateConstructor(t *testing.T) {
	called := false
	c := newContainer()
	require.NoError(t, c.Define("PHPConfig", func() *phpConfig {
		called = true
		return &phpConfig{Path: "from constructor"}
	}, Private()))

	cfg := mustResolve[*phpConfig](t, c, "PHPConfig", nil)
	assert.False(t, called, "private constructor must not run")
	assert.Empty(t, cfg.Path)
}

func TestResolve_PrivateInterfaceConstructor(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Define("ConfigInterface", func() ConfigInterface { return &phpConfig{} }, Private()))

	_, err := c.Resolve("ConfigInterface", nil)
	require.ErrorIs(t, err, ErrReflection)
}

func TestResolve_ZeroParamConstructor(t *testing.T) {
	calls := 0
	c := newContainer()
	require.NoError(t, c.Define("PHPConfig", func() *phpConfig {
		calls++
		return &phpConfig{Path: "/etc/app.php"}
	}))

	cfg := mustResolve[*phpConfig](t, c, "PHPConfig", nil)
	assert.Equal(t, "/etc/app.php", cfg.Path)

	mustResolve[*phpConfig](t, c, "PHPConfig", nil)
	assert.Equal(t, 2, calls, "definitions are transient")
}

func TestResolve_ConstructorError(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Define("Broken", func() (*phpConfig, error) {
		return nil, errBoom
	}))

	t.Run("returned unchanged", func(t *testing.T) {
		_, err := c.Resolve("Broken", nil)
		assert.Same(t, errBoom, err)
	})

	t.Run("returned unchanged through injection", func(t *testing.T) {
		require.NoError(t, c.Define("Consumer", newApp1, Params(Param("config").Ref("Broken"))))

		_, err := c.Resolve("Consumer", nil)
		assert.Same(t, errBoom, err)
	})
}

func TestResolve_ConstructorNilError(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Define("Fine", func() (*phpConfig, error) {
		return &phpConfig{Path: "ok"}, nil
	}))

	cfg := mustResolve[*phpConfig](t, c, "Fine", nil)
	assert.Equal(t, "ok", cfg.Path)
}

func TestResolve_TypeKeyInjection(t *testing.T) {
	c := newContainer()
	require.NoError(t, RegisterType[*phpConfig](c))
	require.NoError(t, c.Define("App1", newApp1))
	c.Bind(Key[ConfigInterface](), Key[*phpConfig]())

	app := mustResolve[*app1](t, c, "App1", nil)
	assert.IsType(t, &phpConfig{}, app.Config)
}

func TestResolve_InjectsContainer(t *testing.T) {
	type holder struct{ C *Container }

	c := newContainer()
	require.NoError(t, c.Define("Holder", func(c *Container) *holder { return &holder{C: c} }))

	h := mustResolve[*holder](t, c, "Holder", nil)
	assert.Same(t, c, h.C)
}

func TestResolve_CircularDependency(t *testing.T) {
	type node struct{ Next any }

	c := newContainer()
	require.NoError(t, c.Define("A", func(b any) *node { return &node{Next: b} }, Params(Param("b").Ref("B"))))
	require.NoError(t, c.Define("B", func(a any) *node { return &node{Next: a} }, Params(Param("a").Ref("A"))))

	_, err := c.Resolve("A", nil)
	require.ErrorIs(t, err, ErrCircularDependency)
	assert.Contains(t, err.Error(), "A -> B -> A")
}

func TestResolve_RedefineReplaces(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.DefineType("Config", (*phpConfig)(nil)))
	require.NoError(t, c.DefineType("Config", (*yamlConfig)(nil)))

	cfg := mustResolve[ConfigInterface](t, c, "Config", nil)
	assert.IsType(t, &yamlConfig{}, cfg)
}

// ── Generic helpers ───────────────────────────────────────────────────────────

func TestResolveGeneric_TypeMismatch(t *testing.T) {
	c := testContainer(t)

	_, err := Resolve[*yamlConfig](c, "PHPConfig", nil)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMustResolve(t *testing.T) {
	c := testContainer(t)

	assert.NotPanics(t, func() {
		cfg := MustResolve[ConfigInterface](c, "ConfigInterface", nil)
		assert.Equal(t, "php", cfg.Format())
	})
	assert.Panics(t, func() { MustResolve[ConfigInterface](c, "Nope", nil) })
}
