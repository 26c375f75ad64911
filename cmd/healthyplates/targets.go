package healthyplates

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/healthplan"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Save and review calculated daily targets",
}

var (
	targetsDate        string
	targetsCurrentDate string
	targetsJSON        bool
)

var targetsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Calculate targets from your profile and save them with an effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := intake.intake()
		if err != nil {
			return err
		}
		t := healthplan.CalculateTargets(in)
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SaveTargets(sqldb, t, targetsDate); err != nil {
				return err
			}
			effective := targetsDate
			if effective == "" {
				effective = "today"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d kcal target effective %s\n", t.TargetCalories, effective)
			return nil
		})
	},
}

var targetsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show targets in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			t, err := service.CurrentTargets(sqldb, targetsCurrentDate)
			if err != nil {
				return err
			}
			if targetsJSON {
				return printJSON(cmd.OutOrStdout(), "targets", t)
			}
			if t == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets saved")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Effective: %s\n", t.EffectiveDate)
			renderTargets(cmd.OutOrStdout(), t.CalculatedTargets)
			return nil
		})
	},
}

var targetsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved target history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.TargetsHistory(sqldb)
			if err != nil {
				return err
			}
			if targetsJSON {
				return printJSON(cmd.OutOrStdout(), "targets history", items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tKCAL\tP\tC\tF\tBMI")
			for _, t := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%d\t%d\t%.1f\n", t.EffectiveDate, t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG, t.BMI)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsSaveCmd, targetsCurrentCmd, targetsHistoryCmd)

	addIntakeFlags(targetsSaveCmd)
	targetsSaveCmd.Flags().StringVar(&targetsDate, "effective-date", "", "Effective date YYYY-MM-DD (default today)")
	targetsCurrentCmd.Flags().StringVar(&targetsCurrentDate, "date", "", "Resolve targets at date YYYY-MM-DD (default today)")
	targetsCurrentCmd.Flags().BoolVar(&targetsJSON, "json", false, "Output as JSON")
	targetsHistoryCmd.Flags().BoolVar(&targetsJSON, "json", false, "Output as JSON")
}
