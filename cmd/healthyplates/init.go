package healthyplates

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local healthyplates database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			v, err := db.SchemaVersion(sqldb)
			if err != nil {
				return err
			}
			path, _ := resolveDBPath()
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized healthyplates database at %s (schema v%d)\n", path, v)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
