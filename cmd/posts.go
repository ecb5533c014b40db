package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagJSON     bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts from the store",
	Long: `Fetch every post from the configured store once and print it.

With --json the output is the same body GET /api/posts would return.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newFetcher(cfg, logger).Fetch(cmd.Context())

		if flagJSON {
			resp := res.Response()
			resp.Posts = posts.Filter(resp.Posts, flagCategory)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		if res.Failed() {
			return fmt.Errorf("%s", res.Message)
		}

		items := posts.Filter(res.Items, flagCategory)
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(items))
		return nil
	},
}

func init() {
	postsCmd.Flags().StringVarP(&flagCategory, "category", "c", posts.CategoryAll, "only show posts in this category")
	postsCmd.Flags().BoolVar(&flagJSON, "json", false, "print the endpoint JSON body")
}

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var bodyCell = lipgloss.NewStyle().Padding(0, 1)

func renderTable(items []posts.Item) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "CATEGORY", "SOURCE", "TITLE", "URL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	for _, it := range items {
		t.Row(it.Date, it.Category, it.Source, it.Title, it.URL)
	}
	return t.Render()
}
