package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the filter presets defined in the config",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := filters.ListFilters()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No filter presets configured")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, name := range names {
			f, _ := filters.GetFilter(name)
			fmt.Fprintf(w, "%s\t%s\n", name, f.Expression())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
