package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	demo "github.com/km-arc/go-ioc/app"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the container demonstration scenario",
	Long: `Walks through binding, rebinding, singletons, constructor injection,
method injection and explicit arguments, printing one line per check.
Exits non-zero on the first failing check.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	application, err := bootstrap(cmd)
	if err != nil {
		printError(cmd, "bootstrap", err)
		return err
	}

	out := cmd.OutOrStdout()
	checks, err := demo.RunDemo(application.Container)
	for _, ch := range checks {
		mark := "ok  "
		if ch.Err != nil {
			mark = "FAIL"
		}
		fmt.Fprintf(out, "[%s] %s\n", mark, ch.Name)
	}
	logger := application.Logger()
	if err != nil {
		logger.Error().Err(err).Msg("demo failed")
		printError(cmd, "demo", err)
		return err
	}

	logger.Info().Int("checks", len(checks)).Msg("demo passed")
	return nil
}
