package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmeire/typedtracks/cli/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "typedtracks",
		Short: "Typed tracks CLI",
		Long: `A command line interface for the product demo application.
It serves the application, lists its routes and manages its database.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", ".", "Directory holding config.json or config.yaml")

	rootCmd.AddCommand(cmd.VersionCmd())
	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.RoutesCmd())
	rootCmd.AddCommand(cmd.DbCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
