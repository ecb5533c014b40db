package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/0wl93/ocean-road-archive/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the posts endpoint",
	Long: `Start the HTTP server exposing GET /api/posts.

The endpoint always answers 200. When the store is not configured or cannot
be reached, the body carries an "error" field and an empty "posts" list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := cfg.Server.Addr
		if flagAddr != "" {
			addr = flagAddr
		}

		if missing := cfg.Posts().Missing(); len(missing) > 0 {
			logger.Warn("store not configured, serving degraded responses",
				zap.Strings("missing", missing))
		}

		srv, err := server.New(server.Config{
			Addr:            addr,
			ShutdownTimeout: cfg.ShutdownDuration(),
		}, newFetcher(cfg, logger), logger.Named("http"))
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides server.addr)")
}
