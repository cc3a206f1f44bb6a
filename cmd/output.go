package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/primectl/filter"
	"github.com/s0up4200/primectl/prime"
)

// printResult filters the records and writes them as indented JSON to
// stdout. A soft stop is reported on stderr.
func printResult(cmd *cobra.Command, res *prime.Result) error {
	f, err := getFilterExpression()
	if err != nil {
		return err
	}

	records := res.Records
	if f != nil {
		total := len(records)
		records, err = filter.Select(cmd.Context(), f, records)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", f.Expression()).
			Int("total", total).
			Int("matched", len(records)).
			Msg("Filter applied")
	}

	if err := writeJSON(cmd.OutOrStdout(), records); err != nil {
		return err
	}

	if res.Partial() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: results are incomplete, %d records fetched before: %v\n", res.Len(), res.Stop)
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	if records, ok := v.([]prime.Resource); ok && records == nil {
		v = []prime.Resource{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
