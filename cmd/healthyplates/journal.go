package healthyplates

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Keep a gratitude journal",
}

var (
	journalDate string
	journalMood string
	journalJSON bool
)

var journalAddCmd = &cobra.Command{
	Use:     "add <item> [item] [item]",
	Short:   "Record up to three things you are grateful for",
	Example: `  healthyplates journal add "morning walk" "good coffee" --mood calm`,
	Args:    cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			e, err := service.AddGratitudeEntry(sqldb, service.AddGratitudeInput{
				Date:  journalDate,
				Items: args,
				Mood:  journalMood,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved gratitude entry for %s (id %s)\n", e.Date, e.ID)
			return nil
		})
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gratitude entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListGratitudeEntries(sqldb, journalDate)
			if err != nil {
				return err
			}
			if journalJSON {
				return printJSON(cmd.OutOrStdout(), "gratitude entries", items)
			}
			for _, e := range items {
				mood := ""
				if e.Mood != "" {
					mood = " [" + e.Mood + "]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n  %s\n", e.Date, mood, e.ID, strings.Join(e.Items, "; "))
			}
			return nil
		})
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a gratitude entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteGratitudeEntry(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted gratitude entry %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalDeleteCmd)

	journalAddCmd.Flags().StringVar(&journalDate, "date", "", "Entry date YYYY-MM-DD (default today)")
	journalAddCmd.Flags().StringVar(&journalMood, "mood", "", "Optional mood word")
	journalListCmd.Flags().StringVar(&journalDate, "date", "", "Only show entries for YYYY-MM-DD")
	journalListCmd.Flags().BoolVar(&journalJSON, "json", false, "Output as JSON")
}
