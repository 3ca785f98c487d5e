package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shubhiks/vogon-go/dialect"
)

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables [table]",
		Short: "List the service's reporting tables, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			format := getOutputFormat(cmd)

			if len(args) == 0 {
				if format == "json" {
					return printJSON(out, dialect.TableNames())
				}
				for _, name := range dialect.TableNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			columns := dialect.Columns(args[0])
			if columns == nil {
				return fmt.Errorf("unknown table %q", args[0])
			}
			if format == "json" {
				return printJSON(out, columns)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tNULLABLE\tDEFAULT")
			for _, col := range columns {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", col.Name, strings.ToLower(col.Type), col.Nullable, col.Default)
			}
			return tw.Flush()
		},
	}
	return cmd
}
