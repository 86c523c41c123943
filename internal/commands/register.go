// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

// DSNEnv overrides the dsn of the configuration file when set. The dbgen
// binary also reads it from a .env file in the working directory.
const DSNEnv = "DBGEN_DSN"

type rootOptions struct {
	configPath string
	verbose    bool
	getenv     func(string) string
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	opts := &rootOptions{getenv: getenv}
	rootCmd := &cobra.Command{
		Use:           "dbgen",
		Short:         "Generate Go data access code from database tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "dbgen.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log catalog queries and timings")

	rootCmd.AddCommand(newGenCmd(opts))
	rootCmd.AddCommand(newTablesCmd(opts))

	return rootCmd
}
