package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		constructor any
		opts        []DefineOption
		wantErr     bool
	}{
		{"plain constructor", "A", newApp1, nil, false},
		{"returns (T, error)", "A", func() (*phpConfig, error) { return nil, nil }, nil, false},
		{"named params", "A", newApp2, []DefineOption{Params(Param("config"), Param("arg1"), Param("arg2"))}, false},
		{"method option", "A", newApp1, []DefineOption{Method("Handle", Param("config"))}, false},
		{"empty id", "", newApp1, nil, true},
		{"not a function", "A", "newApp1", nil, true},
		{"nil", "A", nil, nil, true},
		{"variadic", "A", func(xs ...string) *phpConfig { return nil }, nil, true},
		{"no results", "A", func() {}, nil, true},
		{"three results", "A", func() (int, int, int) { return 0, 0, 0 }, nil, true},
		{"second result not error", "A", func() (int, string) { return 0, "" }, nil, true},
		{"too many names", "A", newApp1, []DefineOption{Params(Param("a"), Param("b"))}, true},
		{"unknown method", "A", newApp1, []DefineOption{Method("Nope")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer()
			err := c.Define(tt.id, tt.constructor, tt.opts...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDefinition)
				assert.False(t, c.Defined(tt.id))
				return
			}
			require.NoError(t, err)
			assert.True(t, c.Defined(tt.id))
		})
	}
}

func TestDefineType(t *testing.T) {
	t.Run("pointer prototype", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.DefineType("PHPConfig", (*phpConfig)(nil)))
		assert.True(t, c.Defined("PHPConfig"))
	})

	t.Run("with method names", func(t *testing.T) {
		c := newContainer()
		require.NoError(t, c.DefineType("App1", (*app1)(nil), Method("Handle", Param("cfg"))))

		override := &yamlConfig{}
		app := mustResolve[*app1](t, c, "App1", nil)
		_, err := c.ResolveMethod(app, "Handle", Args{"cfg": override})
		require.NoError(t, err)
		assert.Same(t, override, app.MethodConfig)
	})

	t.Run("untyped nil", func(t *testing.T) {
		c := newContainer()
		require.ErrorIs(t, c.DefineType("X", nil), ErrInvalidDefinition)
	})

	t.Run("params without constructor", func(t *testing.T) {
		c := newContainer()
		err := c.DefineType("X", (*phpConfig)(nil), Params(Param("path")))
		require.ErrorIs(t, err, ErrInvalidDefinition)
	})

	t.Run("empty id", func(t *testing.T) {
		c := newContainer()
		require.ErrorIs(t, c.DefineType("", (*phpConfig)(nil)), ErrInvalidDefinition)
	})
}

func TestRegister(t *testing.T) {
	c := newContainer()
	require.NoError(t, Register[*app1](c, newApp1))
	require.NoError(t, RegisterType[*phpConfig](c))

	assert.True(t, c.Defined(Key[*app1]()))
	assert.True(t, c.Defined(Key[*phpConfig]()))
}

func TestRegisterType_Interface(t *testing.T) {
	c := newContainer()
	err := RegisterType[ConfigInterface](c)
	require.ErrorIs(t, err, ErrInvalidDefinition)
}
