package app

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-ioc/framework/container"
)

// Check is the outcome of one demonstration step. Err is nil on success.
type Check struct {
	Name string
	Err  error
}

type step struct {
	name string
	run  func(c *container.Container) error
}

// steps walk through the container API in order; later steps depend on the
// bindings made by earlier ones.
var steps = []step{
	{"instance is identity-stable", func(c *container.Container) error {
		if container.Instance() != container.Instance() {
			return errors.New("Instance returned two different containers")
		}
		return nil
	}},
	{"bind interface to implementation", func(c *container.Container) error {
		c.Bind(ConfigID, PHPConfigID)
		return expectGet(c, ConfigID, PHPConfigID)
	}},
	{"rebinding overwrites", func(c *container.Container) error {
		c.Bind(ConfigID, YAMLConfigID)
		return expectGet(c, ConfigID, YAMLConfigID)
	}},
	{"bind implementation to implementation", func(c *container.Container) error {
		c.Bind(PHPConfigID, YAMLConfigID)
		return expectGet(c, PHPConfigID, YAMLConfigID)
	}},
	{"singleton replaces binding", func(c *container.Container) error {
		cfg := &PHPConfig{}
		c.Singleton(PHPConfigID, cfg)
		got, err := c.Get(PHPConfigID)
		if err != nil {
			return err
		}
		if got != cfg {
			return fmt.Errorf("Get(%s) returned %v, not the registered instance", PHPConfigID, got)
		}
		return nil
	}},
	{"constructor injection", func(c *container.Container) error {
		c.Bind(ConfigID, PHPConfigID)
		app1, err := container.Resolve[*App1](c, App1ID, nil)
		if err != nil {
			return err
		}
		return expectPHP("App1.Config", app1.Config)
	}},
	{"method injection", func(c *container.Container) error {
		app1, err := container.Resolve[*App1](c, App1ID, nil)
		if err != nil {
			return err
		}
		if _, err := c.ResolveMethod(app1, "Handle", nil); err != nil {
			return err
		}
		return expectPHP("App1.MethodConfig", app1.MethodConfig)
	}},
	{"explicit arguments", func(c *container.Container) error {
		app2, err := container.Resolve[*App2](c, App2ID, container.Args{"arg1": "value1", "arg2": "value2"})
		if err != nil {
			return err
		}
		if app2.Arg1 != "value1" || app2.Arg2 != "value2" {
			return fmt.Errorf("App2 args: got (%q, %q), want (value1, value2)", app2.Arg1, app2.Arg2)
		}
		return nil
	}},
}

// RunDemo runs every demonstration step against c, which must have
// AppServiceProvider registered. It stops at the first failing step.
func RunDemo(c *container.Container) ([]Check, error) {
	checks := make([]Check, 0, len(steps))
	for _, s := range steps {
		err := s.run(c)
		checks = append(checks, Check{Name: s.name, Err: err})
		if err != nil {
			return checks, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return checks, nil
}

func expectGet(c *container.Container, id, want string) error {
	got, err := c.Get(id)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("Get(%s): got %v, want %s", id, got, want)
	}
	return nil
}

func expectPHP(field string, cfg ConfigInterface) error {
	if _, ok := cfg.(*PHPConfig); !ok {
		return fmt.Errorf("%s: got %T, want *app.PHPConfig", field, cfg)
	}
	return nil
}
