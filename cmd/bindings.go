package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the identifiers bound in the container",
	RunE:  runBindings,
}

func init() {
	rootCmd.AddCommand(bindingsCmd)
}

func runBindings(cmd *cobra.Command, args []string) error {
	application, err := bootstrap(cmd)
	if err != nil {
		printError(cmd, "bootstrap", err)
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range application.Bindings() {
		target, err := application.Get(id)
		if err != nil {
			printError(cmd, "bindings", err)
			return err
		}
		if s, ok := target.(string); ok && !application.IsShared(id) {
			fmt.Fprintf(out, "%-40s -> %s\n", id, s)
			continue
		}
		fmt.Fprintf(out, "%-40s = %T\n", id, target)
	}
	return nil
}
