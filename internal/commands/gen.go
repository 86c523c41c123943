package commands

import (
	"github.com/spf13/cobra"
)

func newGenCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [table...]",
		Short: "Generate one Go file per table",
		Long: `Generate one Go file per table with a record type and its insert,
select and delete functions. Tables given as arguments replace the tables of
the configuration file; without any, every base table is generated.`,
		Example: `  # Generate the configured tables
  dbgen gen

  # Generate two tables with another configuration
  dbgen gen -c ./db/dbgen.yaml users orders`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, root)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()
			return s.generator.GenerateFiles(cmd.Context(), args...)
		},
	}

	return cmd
}
