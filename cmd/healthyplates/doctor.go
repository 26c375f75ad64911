package healthyplates

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unreadable store values: %d\n", report.InvalidStoreRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Targets with bad dates: %d\n", report.InvalidTargetDates)
			fmt.Fprintf(cmd.OutOrStdout(), "Log entries with bad dates: %d\n", report.InvalidEntryDates)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed store values: %d\n", report.FixedStoreRows)
				// Re-check so the exit status reflects the final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.InvalidStoreRows > 0 || report.InvalidTargetDates > 0 || report.InvalidEntryDates > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove store values that no longer decode")
}
