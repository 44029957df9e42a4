package cmd

import (
	"context"
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/tmeire/typedtracks/database"
	"github.com/tmeire/typedtracks/example/products"
)

// DbCmd returns a cobra.Command for the db command
func DbCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage database tasks",
		Long:  `Manage database tasks, including migrations.`,
	}

	dbCmd.AddCommand(MigrateCmd())

	return dbCmd
}

// MigrateCmd returns a cobra.Command for the db migrate command
func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Manage database migrations using Goose.`,
	}

	migrateCmd.AddCommand(migrationCmd("up", "Apply pending migrations"))
	migrateCmd.AddCommand(migrationCmd("down", "Revert the most recent migration"))
	migrateCmd.AddCommand(migrationCmd("status", "Show the status of all migrations"))

	return migrateCmd
}

func migrationCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), conf, false)
			if err != nil {
				return err
			}
			defer db.Close()

			return migrateProducts(cmd.Context(), db, command)
		},
	}
}

func migrateProducts(ctx context.Context, db *sql.DB, command string) error {
	return database.Migrate(ctx, db, products.Migrations, products.MigrationsDir, command)
}
