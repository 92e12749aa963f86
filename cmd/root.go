package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	demo "github.com/km-arc/go-ioc/app"
	"github.com/km-arc/go-ioc/framework/app"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "go-ioc",
	Short: "IoC container with constructor and method injection",
	Long: `go-ioc boots an application on the process-wide IoC container.

Configuration is read from .env and the environment:
  APP_NAME, APP_ENV, APP_DEBUG
  CONTAINER_INDIRECTION  chase | single
  LOG_LEVEL, LOG_FORMAT  console | json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", ".env file to load")
}

// bootstrap creates the application with the demonstration provider
// registered and booted.
func bootstrap(cmd *cobra.Command) (*app.Application, error) {
	application, err := app.New(app.WithEnvFiles(envFile), app.WithLogOutput(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	if err := application.Register(&demo.AppServiceProvider{}); err != nil {
		return nil, err
	}
	if err := application.Boot(); err != nil {
		return nil, err
	}
	return application, nil
}

// printError reports err on the command's error writer. Cobra's own error
// output is silenced, so this is the only report.
func printError(cmd *cobra.Command, msg string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", msg, err)
}
