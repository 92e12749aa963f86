package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig       `validate:"required"`
	Container ContainerConfig `validate:"required"`
	Log       LogConfig       `validate:"required"`
}

type AppConfig struct {
	Name  string `validate:"required"`
	Env   string `validate:"oneof=local production testing"`
	Debug bool
}

// ContainerConfig tunes the IoC container.
type ContainerConfig struct {
	// Indirection is "chase" (follow every binding hop) or "single".
	Indirection string `validate:"oneof=chase single"`
}

type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn error disabled"`
	Format string `validate:"oneof=console json"`
}

// defaults maps every environment key to its fallback value.
var defaults = map[string]any{
	"APP_NAME":              "GoIoC",
	"APP_ENV":               "local",
	"APP_DEBUG":             true,
	"CONTAINER_INDIRECTION": "chase",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "console",
}

// Load reads .env (if present), then populates and validates a Config from
// environment variables. Variables already set in the environment win over
// the file.
//
//	cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Container: ContainerConfig{
			Indirection: v.GetString("CONTAINER_INDIRECTION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsLocal() bool      { return c.App.Env == "local" }
func (c *Config) IsProduction() bool { return c.App.Env == "production" }
func (c *Config) IsTesting() bool    { return c.App.Env == "testing" }
