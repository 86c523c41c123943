package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTablesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables and views of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, root)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			tables, err := s.generator.Tables(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tVIEW")
			for _, t := range tables {
				_, _ = fmt.Fprintf(w, "%s\t%t\n", t.Name, t.IsView)
			}
			return w.Flush()
		},
	}

	return cmd
}
