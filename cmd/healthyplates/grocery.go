package healthyplates

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/grocery"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Generate grocery lists for home cooking",
}

var (
	groceryDiet     string
	groceryCuisine  string
	groceryBudget   string
	groceryDuration int
	groceryPeople   int
	groceryProtein  string
	groceryStaples  string
	groceryAvoid    string
	groceryJSON     bool
)

var groceryGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a grocery list from preferences",
	Example: `  healthyplates grocery generate --diet veg --cuisine south --budget low --duration 7 --people 2
  healthyplates grocery generate --diet non-veg --cuisine mixed --avoid "brinjal,okra" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs := model.UserPreferences{
			Diet:             model.Diet(groceryDiet),
			Cuisine:          model.Cuisine(groceryCuisine),
			Budget:           model.Budget(groceryBudget),
			Duration:         groceryDuration,
			PeopleCount:      groceryPeople,
			ProteinPriority:  model.ProteinPriority(groceryProtein),
			StaplesAvailable: splitList(groceryStaples),
			AvoidItems:       splitList(groceryAvoid),
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.GroceryDefaults(sqldb, &prefs); err != nil {
				return err
			}
			fillGroceryFallbacks(&prefs)
			if err := prefs.Validate(); err != nil {
				return err
			}
			return withCatalog(func(cat *catalog.Catalog) error {
				list := grocery.Generate(cat.Grocery, prefs)
				if groceryJSON {
					return printJSON(cmd.OutOrStdout(), "grocery list", list)
				}
				renderGroceryList(cmd.OutOrStdout(), prefs, list)
				return nil
			})
		})
	},
}

var groceryOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List pantry staples and commonly avoided items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(cat *catalog.Catalog) error {
			opts := map[string][]string{
				"pantry_staples":  cat.Grocery.PantryStaples,
				"avoidable_items": cat.Grocery.AvoidableItems,
			}
			if groceryJSON {
				return printJSON(cmd.OutOrStdout(), "grocery options", opts)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Pantry staples (--staples): %s\n", strings.Join(cat.Grocery.PantryStaples, ", "))
			fmt.Fprintf(w, "Avoidable items (--avoid): %s\n", strings.Join(cat.Grocery.AvoidableItems, ", "))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(groceryCmd)
	groceryCmd.AddCommand(groceryGenerateCmd, groceryOptionsCmd)

	groceryGenerateCmd.Flags().StringVar(&groceryDiet, "diet", "", "Diet: veg or non-veg (default from config, else veg)")
	groceryGenerateCmd.Flags().StringVar(&groceryCuisine, "cuisine", "", "Cuisine: south, north, or mixed (default from config, else south)")
	groceryGenerateCmd.Flags().StringVar(&groceryBudget, "budget", string(model.BudgetLow), "Budget: low or medium")
	groceryGenerateCmd.Flags().IntVar(&groceryDuration, "duration", 7, "Days to shop for: 3 or 7")
	groceryGenerateCmd.Flags().IntVar(&groceryPeople, "people", 0, "Household size (default from config)")
	groceryGenerateCmd.Flags().StringVar(&groceryProtein, "protein", string(model.ProteinNormal), "Protein priority: normal or high")
	groceryGenerateCmd.Flags().StringVar(&groceryStaples, "staples", "", "Comma-separated staples already at home")
	groceryGenerateCmd.Flags().StringVar(&groceryAvoid, "avoid", "", "Comma-separated items to skip")
	groceryGenerateCmd.Flags().BoolVar(&groceryJSON, "json", false, "Output as JSON")
	groceryOptionsCmd.Flags().BoolVar(&groceryJSON, "json", false, "Output as JSON")
}

func fillGroceryFallbacks(prefs *model.UserPreferences) {
	if prefs.Diet == "" {
		prefs.Diet = model.DietVeg
	}
	if prefs.Cuisine == "" {
		prefs.Cuisine = model.CuisineSouth
	}
	if prefs.PeopleCount == 0 {
		prefs.PeopleCount = 1
	}
}

func renderGroceryList(w io.Writer, prefs model.UserPreferences, list model.GeneratedList) {
	s := grocery.Summarize(list)
	fmt.Fprintf(w, "Grocery list: %s %s, %s budget, %d days, %d people\n",
		prefs.Cuisine, prefs.Diet, prefs.Budget, prefs.Duration, prefs.PeopleCount)
	fmt.Fprintf(w, "Items to buy: %d (skipped %d)\n", s.ToBuy, s.Excluded)
	for _, g := range s.Groups {
		fmt.Fprintf(w, "\n[%s]\n", g.Category)
		for _, it := range g.Items {
			mark := " "
			if it.IsExcluded {
				mark = "x"
			}
			fmt.Fprintf(w, " %s %s\t%s\n", mark, it.Name, grocery.FormatQuantity(it.ScaledQuantity, it.Unit))
		}
	}

	meals := []struct {
		name    string
		recipes []model.RecipeTemplate
	}{
		{"Breakfast", list.Recipes.Breakfast},
		{"Lunch", list.Recipes.Lunch},
		{"Dinner", list.Recipes.Dinner},
		{"Snack", list.Recipes.Snack},
	}
	fmt.Fprintln(w, "\nRecipe ideas:")
	for _, m := range meals {
		names := make([]string, 0, len(m.recipes))
		for _, r := range m.recipes {
			names = append(names, r.Name)
		}
		if len(names) == 0 {
			names = append(names, "-")
		}
		fmt.Fprintf(w, "  %s: %s\n", m.name, strings.Join(names, ", "))
	}
	if len(list.StorageTips) > 0 {
		fmt.Fprintln(w, "\nStorage tips:")
		for _, t := range list.StorageTips {
			fmt.Fprintf(w, "  %s: %s\n", t.Item, t.Tip)
		}
	}
	if len(list.Substitutions) > 0 {
		fmt.Fprintln(w, "\nSubstitutions:")
		for _, sub := range list.Substitutions {
			fmt.Fprintf(w, "  %s -> %s\n", sub.Original, sub.Substitute)
		}
	}
	fmt.Fprintf(w, "\nEstimated cost: Rs %d - %d\n", list.EstimatedCost.Min, list.EstimatedCost.Max)
}
