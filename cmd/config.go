package cmd

import (
	"fmt"
	"strings"

	"github.com/0wl93/ocean-road-archive/internal/config"
	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long:  "Print the config file path and which store settings are present. Credentials are masked.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		path := flagConfig
		if path == "" {
			path = config.DefaultConfigPath()
		}

		fmt.Fprintf(out, "Config: %s\n", path)
		fmt.Fprintf(out, "Backend: %s\n", cfg.Store.Backend)
		if cfg.Store.Backend == posts.BackendFeed {
			fmt.Fprintf(out, "Feed URL: %s\n", valueOrUnset(cfg.Store.FeedURL))
		} else {
			fmt.Fprintf(out, "Access token: %s\n", maskSecret(cfg.Store.AccessToken))
			fmt.Fprintf(out, "Base ID: %s\n", valueOrUnset(cfg.Store.BaseID))
			fmt.Fprintf(out, "Table ID: %s\n", valueOrUnset(cfg.Store.TableID))
			fmt.Fprintf(out, "API URL: %s\n", valueOrUnset(cfg.Store.APIURL))
		}
		fmt.Fprintf(out, "Listen: %s\n", cfg.Server.Addr)
		fmt.Fprintf(out, "Endpoint: %s\n", cfg.Client.Endpoint)
		fmt.Fprintf(out, "Categories: %s\n", strings.Join(cfg.CategoryList(), ", "))

		if missing := cfg.Posts().Missing(); len(missing) > 0 {
			fmt.Fprintf(out, "\nMissing: %s\n", strings.Join(missing, ", "))
			fmt.Fprintln(out, "The endpoint will answer with an error until these are set.")
		}
	},
}

func valueOrUnset(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not set)"
	}
	return s
}

// maskSecret keeps the first four characters of a credential.
func maskSecret(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 8:
		return strings.Repeat("*", len(s))
	default:
		return s[:4] + strings.Repeat("*", len(s)-4)
	}
}
