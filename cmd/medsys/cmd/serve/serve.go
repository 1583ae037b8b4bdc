package serve

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/willyyyaj/medical-system/internal/app"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the clinic API server",
	Long: `Run the clinic API server.

- Serves the REST API under /api/v1 and notifications under /ws/:user_id
- Uses PostgreSQL when DATABASE_URL is set, a local SQLite file otherwise
- Stops accepting connections on SIGINT/SIGTERM and drains in-flight requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := app.InitializeServer()
		if err != nil {
			return err
		}

		if err := srv.Start(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
