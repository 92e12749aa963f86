package app

import (
	"github.com/km-arc/go-ioc/framework/container"
)

// Identifiers the demonstration types are registered under.
const (
	ConfigID     = "ConfigInterface"
	PHPConfigID  = "PHPConfig"
	YAMLConfigID = "YAMLConfig"
	App1ID       = "App1"
	App2ID       = "App2"
)

// AppServiceProvider defines the demonstration types.
//
// Bound identifiers:
//   - "ConfigInterface" → "PHPConfig"
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(c *container.Container) error {
	if err := c.DefineType(PHPConfigID, (*PHPConfig)(nil)); err != nil {
		return err
	}
	if err := c.DefineType(YAMLConfigID, (*YAMLConfig)(nil)); err != nil {
		return err
	}
	if err := c.Define(App1ID, NewApp1,
		container.Params(container.Param("config").Ref(ConfigID)),
		container.Method("Handle", container.Param("config").Ref(ConfigID)),
	); err != nil {
		return err
	}
	if err := c.Define(App2ID, NewApp2, container.Params(
		container.Param("config").Ref(ConfigID),
		container.Param("arg1"),
		container.Param("arg2"),
	)); err != nil {
		return err
	}

	c.Bind(ConfigID, PHPConfigID)
	return nil
}
