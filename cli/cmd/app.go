package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	tracks "github.com/tmeire/typedtracks"
	"github.com/tmeire/typedtracks/database"
	"github.com/tmeire/typedtracks/example/products"
)

// loadConfig reads the configuration from the directory given by --config.
func loadConfig(cmd *cobra.Command) (tracks.Config, error) {
	dir, err := cmd.Flags().GetString("config")
	if err != nil {
		return tracks.Config{}, err
	}
	conf, err := tracks.LoadConfig(dir)
	if err != nil {
		return tracks.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if conf.Version == "" {
		conf.Version = Version
	}
	return conf, nil
}

// newRouter builds the product application on top of db.
func newRouter(conf tracks.Config, db *sql.DB) tracks.Router {
	return tracks.New(conf).
		RequestMiddleware(database.Middleware(db)).
		Module(products.Module(products.NewStore(db))).
		HealthCheck("/health", tracks.HealthCheck{
			Name:     "database",
			Check:    db.PingContext,
			Critical: true,
			Timeout:  2 * time.Second,
		})
}

func openDatabase(ctx context.Context, conf tracks.Config, migrate bool) (*sql.DB, error) {
	db, err := conf.Database.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if !migrate {
		return db, nil
	}
	if err := migrateProducts(ctx, db, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
