package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listFlags listArgs

var listCmd = &cobra.Command{
	Use:   "list RESOURCE",
	Short: "List every record of a resource",
	Long: fmt.Sprintf(`List every record of a resource. Pagination is followed to the last page,
the page size only controls how many records each request returns.

Resources: %s

Per-user resources default to the user of the stored session.`,
		strings.Join(resourceNames(func(r resource) bool { return r.List != nil }), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var getCmd = &cobra.Command{
	Use:   "get RESOURCE ID",
	Short: "Show a single record",
	Long: fmt.Sprintf(`Show a single record.

Resources: %s, account, me`,
		strings.Join(resourceNames(func(r resource) bool { return r.Get != nil }), ", ")),
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	listCmd.Flags().IntVar(&listFlags.Offset, "offset", 0, "page offset for offset paged resources")
	listCmd.Flags().IntVar(&listFlags.Limit, "limit", 0, "page size (default from config)")
	listCmd.Flags().StringVar(&listFlags.Cursor, "cursor", "", "start cursor for cursor paged resources")
	listCmd.Flags().StringVar(&listFlags.Sort, "sort", "", "sort order, unknown values fall back to the resource default")
	listCmd.Flags().StringSliceVar(&listFlags.Types, "type", nil, "type filter (repeatable)")
	listCmd.Flags().StringVar(&listFlags.State, "state", "", "state filter")
	addFilterFlags(listCmd)

	for _, c := range []*cobra.Command{listCmd, getCmd} {
		c.Flags().StringVar(&listFlags.Include, "include", "", "related records to include")
		c.Flags().StringVarP(&listFlags.User, "user", "u", "", "user ID for per-user resources")
	}

	rootCmd.AddCommand(listCmd, getCmd)
}

func runList(cmd *cobra.Command, argv []string) error {
	r, err := findResource(argv[0])
	if err != nil {
		return err
	}
	if r.List == nil {
		return fmt.Errorf("%s cannot be listed", r.Name)
	}

	a := listFlags
	if a.Limit == 0 {
		a.Limit = cfg.Prime.PageLimit
	}
	if a.User, err = r.userFor(a, store.Session().UserID); err != nil {
		return err
	}

	logger.Debug().
		Str("resource", r.Name).
		Int("limit", a.Limit).
		Str("user", a.User).
		Msg("Listing records")

	res, err := r.List(cmd.Context(), client, a)
	if err != nil {
		return err
	}

	return printResult(cmd, res)
}

func runGet(cmd *cobra.Command, argv []string) error {
	name := strings.ToLower(argv[0])

	// Singletons take no ID
	switch name {
	case "account":
		res, err := client.GetAccount(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	case "me":
		res, err := client.GetCurrentUser(cmd.Context(), listFlags.Include)
		if err != nil {
			return err
		}
		return printResult(cmd, res)
	}

	r, err := findResource(name)
	if err != nil {
		return err
	}
	if r.Get == nil {
		return fmt.Errorf("%s has no single record lookup, use 'primectl list %s'", r.Name, r.Name)
	}
	if len(argv) != 2 {
		return fmt.Errorf("get %s requires an ID", r.Name)
	}

	a := listFlags
	if a.User, err = r.userFor(a, store.Session().UserID); err != nil {
		return err
	}

	res, err := r.Get(cmd.Context(), client, argv[1], a)
	if err != nil {
		return err
	}

	return printResult(cmd, res)
}
