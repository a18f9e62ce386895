package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trend-screener/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger and health server",
		Long: `Starts an HTTP server exposing health, progress and scan trigger
endpoints. Scans started over HTTP run in the background and send
their notifications through the configured sinks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(addr, app.newOrchestrator(0), app.Universe, app.Logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr from config)")
	return cmd
}
