// Package commands wires the CLI surface: init, import, forecast and
// train subcommands over the ingest, ledger and forecast packages.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/budgetwise-dev/budgetwise/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "budgetwise",
		Short:   "Personal finance tracking and spending forecasts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newForecastCommand())
	rootCmd.AddCommand(newTrainCommand())

	return rootCmd
}
