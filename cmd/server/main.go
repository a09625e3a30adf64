// Command server runs the customer core API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "customercore",
		Short:         "Customer master records with a task-gated lifecycle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (defaults to ./config.yaml when present)")

	root.AddCommand(
		newServeCommand(&configFile),
		newMigrateCommand(&configFile),
		newIssueTokenCommand(&configFile),
	)
	return root
}
