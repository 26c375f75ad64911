package healthyplates

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/content"
)

var (
	greetOccasion string
	greetTone     string
	greetVariant  int
	greetJSON     bool
)

var greetCmd = &cobra.Command{
	Use:   "greet [name]",
	Short: "Write a short greeting message",
	Long: "Write a short greeting for an occasion and tone. Unknown occasions fall back to general, " +
		"unknown tones to warm. Use --variant to cycle through alternatives.",
	Example: `  healthyplates greet Asha --occasion birthday --tone fun
  healthyplates greet --occasion get-well --variant 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return withCatalog(func(cat *catalog.Catalog) error {
			msg := content.Greeting(cat.Content, greetOccasion, greetTone, name, greetVariant)
			if greetJSON {
				return printJSON(cmd.OutOrStdout(), "greeting", map[string]string{"message": msg})
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(greetCmd)
	greetCmd.Flags().StringVar(&greetOccasion, "occasion", content.DefaultOccasion, "Occasion, e.g. birthday, festival, get-well, thank-you, new-year")
	greetCmd.Flags().StringVar(&greetTone, "tone", content.DefaultTone, "Tone: warm, formal, or fun")
	greetCmd.Flags().IntVar(&greetVariant, "variant", 0, "Template variant index")
	greetCmd.Flags().BoolVar(&greetJSON, "json", false, "Output as JSON")
}
