package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
	"github.com/Aleph-Alpha/vecsearch/v1/workflow"
)

func NewSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a collection",
		Long: `Embeds the query and returns the best matching records. A sparse search on
a collection without sparse vectors runs as a dense search instead; the
response reports this with fallbackOccurred.`,
		Args: cobra.ExactArgs(1),
		RunE: makeSearchRunner(a),
	}

	addCollectionFlag(cmd)
	addModeFlag(cmd, string(vectordb.ModeSparse))
	cmd.Flags().IntP("limit", "n", 5, "Maximum results")
	cmd.Flags().StringArray("filter", nil, "Only return records whose payload matches key=value (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "Skip records whose payload matches key=value (repeatable)")
	return cmd
}

func makeSearchRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		query := args[0]
		collection, _ := cmd.Flags().GetString("collection")
		modeFlag, _ := cmd.Flags().GetString("mode")
		limit, _ := cmd.Flags().GetInt("limit")
		must, _ := cmd.Flags().GetStringArray("filter")
		mustNot, _ := cmd.Flags().GetStringArray("exclude")

		mode, err := vectordb.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		filter, err := parseFilter(must, mustNot)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
			resp, err := d.Service.Search(ctx, query, collection, mode, limit, workflow.WithFilter(filter))
			if err != nil {
				return err
			}
			return outputJSON(cmd, resp)
		})
	}
}

// parseFilter builds a payload filter from key=value arguments. Values
// that parse as an integer or a bool are matched as such.
func parseFilter(must, mustNot []string) (*vectordb.Filter, error) {
	if len(must) == 0 && len(mustNot) == 0 {
		return nil, nil
	}
	f := &vectordb.Filter{}
	for _, arg := range must {
		m, err := parseMatch(arg)
		if err != nil {
			return nil, err
		}
		f.Must = append(f.Must, m)
	}
	for _, arg := range mustNot {
		m, err := parseMatch(arg)
		if err != nil {
			return nil, err
		}
		f.MustNot = append(f.MustNot, m)
	}
	return f, nil
}

func parseMatch(arg string) (vectordb.Match, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return vectordb.Match{}, fmt.Errorf("%w: filter %q is not key=value", vectordb.ErrInvalidArgument, arg)
	}
	key = strings.TrimSpace(key)
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return vectordb.NewMatch(key, n), nil
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return vectordb.NewMatch(key, b), nil
	}
	return vectordb.NewMatch(key, value), nil
}
