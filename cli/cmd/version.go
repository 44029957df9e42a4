package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is the version of the application
	Version = "0.1.0"
)

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("typedtracks version %s\n", Version)
		},
	}
}
