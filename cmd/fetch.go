package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var fetchParams []string

var fetchCmd = &cobra.Command{
	Use:   "fetch ENDPOINT",
	Short: "GET any API endpoint and follow its pagination",
	Long: `Fetch issues a GET request against an endpoint relative to the v2 API root
and follows next links until the last page.

Example:
  primectl fetch learningObjects --param "page[limit]=10" --param "filter.loTypes=course"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(fetchParams)
		if err != nil {
			return err
		}

		res, err := client.Fetch(cmd.Context(), "GET", args[0], params)
		if err != nil {
			return err
		}

		return printResult(cmd, res)
	},
}

func init() {
	fetchCmd.Flags().StringArrayVar(&fetchParams, "param", nil, "query parameter as key=value (repeatable)")
	addFilterFlags(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}

// parseParams turns key=value pairs into query values. Repeated keys
// accumulate.
func parseParams(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params.Add(key, value)
	}
	return params, nil
}
