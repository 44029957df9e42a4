package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmeire/typedtracks/otel"
)

// ServeCmd returns a cobra.Command that runs the HTTP server until
// interrupted.
func ServeCmd() *cobra.Command {
	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long:  `Apply pending migrations and serve the application until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port != 0 {
				conf.Port = port
			}

			shutdown, err := otel.Setup(ctx, conf.Name, conf.Version, conf.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err = errors.Join(err, shutdown(sctx))
			}()

			db, err := openDatabase(ctx, conf, true)
			if err != nil {
				return err
			}
			defer db.Close()

			slog.InfoContext(ctx, "starting application", "name", conf.Name, "version", conf.Version)
			return newRouter(conf, db).Run(ctx)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "Port to listen on, overrides the configuration")
	return serveCmd
}
