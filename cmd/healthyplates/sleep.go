package healthyplates

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Track nightly sleep",
}

var (
	sleepDate    string
	sleepBed     string
	sleepWake    string
	sleepQuality int
	sleepNotes   string
	sleepLimit   int
	sleepJSON    bool
)

var sleepAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Log a night of sleep (date is the wake-up day)",
	Example: `  healthyplates sleep add --bed 23:15 --wake 06:45 --quality 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			e, err := service.AddSleepEntry(sqldb, service.AddSleepInput{
				Date:     sleepDate,
				Bedtime:  sleepBed,
				WakeTime: sleepWake,
				Quality:  sleepQuality,
				Notes:    sleepNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2fh of sleep for %s (id %s)\n", e.DurationHours, e.Date, e.ID)
			return nil
		})
	},
}

var sleepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sleep entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListSleepEntries(sqldb, sleepLimit)
			if err != nil {
				return err
			}
			if sleepJSON {
				return printJSON(cmd.OutOrStdout(), "sleep entries", items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tBED\tWAKE\tHOURS\tQUALITY\tID")
			for _, e := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f\t%d\t%s\n", e.Date, e.Bedtime, e.WakeTime, e.DurationHours, e.Quality, e.ID)
			}
			return nil
		})
	},
}

var sleepDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sleep entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteSleepEntry(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted sleep entry %s\n", args[0])
			return nil
		})
	},
}

var sleepStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages and goal streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s, err := service.GetSleepStats(sqldb)
			if err != nil {
				return err
			}
			if sleepJSON {
				return printJSON(cmd.OutOrStdout(), "sleep stats", s)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Entries: %d\n", s.Entries)
			fmt.Fprintf(w, "Average: %.2fh, quality %.2f/5\n", s.AvgDurationHours, s.AvgQuality)
			fmt.Fprintf(w, "Goal: %gh, met on %d night(s)\n", s.GoalHours, s.GoalMetDays)
			fmt.Fprintf(w, "Streak: %d current, %d longest\n", s.CurrentStreak, s.LongestStreak)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sleepCmd)
	sleepCmd.AddCommand(sleepAddCmd, sleepListCmd, sleepDeleteCmd, sleepStatsCmd)

	sleepAddCmd.Flags().StringVar(&sleepDate, "date", "", "Wake-up date YYYY-MM-DD (default today)")
	sleepAddCmd.Flags().StringVar(&sleepBed, "bed", "", "Bedtime HH:MM")
	sleepAddCmd.Flags().StringVar(&sleepWake, "wake", "", "Wake time HH:MM")
	sleepAddCmd.Flags().IntVar(&sleepQuality, "quality", 3, "Sleep quality 1-5")
	sleepAddCmd.Flags().StringVar(&sleepNotes, "notes", "", "Optional notes")
	_ = sleepAddCmd.MarkFlagRequired("bed")
	_ = sleepAddCmd.MarkFlagRequired("wake")

	sleepListCmd.Flags().IntVar(&sleepLimit, "limit", 0, "Max entries to show (0 = all)")
	sleepListCmd.Flags().BoolVar(&sleepJSON, "json", false, "Output as JSON")
	sleepStatsCmd.Flags().BoolVar(&sleepJSON, "json", false, "Output as JSON")
}
