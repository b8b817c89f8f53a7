package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the CSV column positions read for each player field",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		s := c.Columns.Schema()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tINDEX")
		for _, col := range s.Columns() {
			fmt.Fprintf(w, "%s\t%d\n", col.Name, col.Index)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rows need at least %d fields; the first line is skipped as a header.\n", s.MinFields())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
