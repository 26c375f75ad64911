package healthyplates

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/content"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Browse and bookmark mindfulness practices",
}

var (
	practiceCategory   string
	practiceMaxMinutes int
	practiceSteps      bool
	practiceJSON       bool
)

var practiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List practices, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(cat *catalog.Catalog) error {
			items := content.Practices(cat.Content, practiceCategory, practiceMaxMinutes)
			if practiceJSON {
				return printJSON(cmd.OutOrStdout(), "practices", items)
			}
			w := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(w, "No practices found. Categories: %s\n", strings.Join(content.Categories(cat.Content), ", "))
				return nil
			}
			for _, p := range items {
				fmt.Fprintf(w, "%s (%s, %d min): %s\n", p.Name, p.Category, p.Minutes, p.Description)
				if practiceSteps {
					for i, s := range p.Steps {
						fmt.Fprintf(w, "  %d. %s\n", i+1, s)
					}
				}
			}
			return nil
		})
	},
}

var practiceSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Bookmark a practice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(cat *catalog.Catalog) error {
			return withDB(func(sqldb *sql.DB) error {
				p, err := service.SavePractice(sqldb, cat.Content.Practices, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved practice %s\n", p.Name)
				return nil
			})
		})
	},
}

var practiceUnsaveCmd = &cobra.Command{
	Use:   "unsave <name>",
	Short: "Remove a bookmarked practice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UnsavePractice(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed practice %s\n", args[0])
			return nil
		})
	},
}

var practiceSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List bookmarked practices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListSavedPractices(sqldb)
			if err != nil {
				return err
			}
			if practiceJSON {
				return printJSON(cmd.OutOrStdout(), "saved practices", items)
			}
			for _, s := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.SavedAt.Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)
	practiceCmd.AddCommand(practiceListCmd, practiceSaveCmd, practiceUnsaveCmd, practiceSavedCmd)

	practiceListCmd.Flags().StringVar(&practiceCategory, "category", "", "Filter by category")
	practiceListCmd.Flags().IntVar(&practiceMaxMinutes, "max-minutes", 0, "Only practices up to this many minutes")
	practiceListCmd.Flags().BoolVar(&practiceSteps, "steps", false, "Show step-by-step instructions")
	practiceListCmd.Flags().BoolVar(&practiceJSON, "json", false, "Output as JSON")
	practiceSavedCmd.Flags().BoolVar(&practiceJSON, "json", false, "Output as JSON")
}
