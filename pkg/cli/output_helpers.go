package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	vogon "github.com/shubhiks/vogon-go"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult renders a query result as a table or as JSON records.
func printResult(w io.Writer, format string, description []vogon.Column, rows [][]interface{}) error {
	if format == "json" {
		records := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			record := make(map[string]interface{}, len(description))
			for i, col := range description {
				if i < len(row) {
					record[col.Name] = row[i]
				}
			}
			records = append(records, record)
		}
		return printJSON(w, records)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(description) > 0 {
		names := make([]string, len(description))
		for i, col := range description {
			names[i] = col.Name
		}
		fmt.Fprintln(tw, strings.Join(names, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprintf("%v", v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return nil
}
