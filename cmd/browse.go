package cmd

import (
	"fmt"

	"github.com/0wl93/ocean-road-archive/internal/client"
	"github.com/0wl93/ocean-road-archive/internal/tui"
	"github.com/spf13/cobra"
)

var (
	flagLocal    bool
	flagEndpoint string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts in the terminal",
	Long:  "Open the filterable post list. Posts are loaded once from the endpoint, or straight from the store with --local.",
	RunE:  runBrowse,
}

func init() {
	addBrowseFlags(browseCmd)
}

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagLocal, "local", false, "read the store in-process instead of calling the endpoint")
	cmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "posts endpoint URL (overrides client.endpoint)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}
	return tui.Run(tui.RunOpts{
		Loader:     loader,
		Categories: cfg.CategoryList(),
	})
}

func newLoader() (tui.Loader, error) {
	if flagLocal {
		return newFetcher(cfg, logger), nil
	}
	endpoint := cfg.Client.Endpoint
	if flagEndpoint != "" {
		endpoint = flagEndpoint
	}
	c, err := client.New(endpoint, cfg.ClientTimeout())
	if err != nil {
		return nil, fmt.Errorf("invalid --endpoint: %w", err)
	}
	return c, nil
}
