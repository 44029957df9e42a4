package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// RoutesCmd returns a cobra.Command that prints every registered route with
// the name used to generate URLs for it.
func RoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// Routes only need a router, not a populated database.
			conf.Database.SQLite.Path = ""
			db, err := openDatabase(cmd.Context(), conf, false)
			if err != nil {
				return err
			}
			defer db.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME\tCONTROLLER\tACTION")
			for _, r := range newRouter(conf, db).Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Method, r.Path, r.Name, r.Controller, r.Action)
			}
			return w.Flush()
		},
	}
}
