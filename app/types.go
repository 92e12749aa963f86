// Package app is the demonstration application: two interchangeable config
// implementations and two consumers wired through the container.
package app

// ConfigInterface is implemented by every configuration source.
type ConfigInterface interface {
	Format() string
}

type PHPConfig struct{ Path string }

func (*PHPConfig) Format() string { return "php" }

type YAMLConfig struct{ Path string }

func (*YAMLConfig) Format() string { return "yaml" }

// App1 receives its config through the constructor and through Handle.
type App1 struct {
	Config       ConfigInterface
	MethodConfig ConfigInterface
}

func NewApp1(config ConfigInterface) *App1 {
	return &App1{Config: config}
}

func (a *App1) Handle(config ConfigInterface) {
	a.MethodConfig = config
}

// App2 mixes an injected config with two caller-supplied strings.
type App2 struct {
	Config ConfigInterface
	Arg1   string
	Arg2   string
}

func NewApp2(config ConfigInterface, arg1, arg2 string) *App2 {
	return &App2{Config: config, Arg1: arg1, Arg2: arg2}
}
