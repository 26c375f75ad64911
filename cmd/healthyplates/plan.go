package healthyplates

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/healthplan"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Calculate calorie targets and build meal plans",
}

// intakeFlags backs the intake form flags shared by plan and targets
// commands.
type intakeFlags struct {
	age          int
	sex          string
	heightCm     float64
	weightKg     float64
	targetWeight float64
	goal         string
	pace         string
	days         int
	activity     string
	sleepHours   float64
	stress       string
	dietType     string
	allergies    string
	meals        int
	cookingTime  string
	conditions   string
	notes        string
}

var (
	intake   intakeFlags
	planJSON bool
)

func (f intakeFlags) intake() (model.UserIntake, error) {
	in := model.UserIntake{
		Profile: model.ProfileMetrics{
			Age:            f.age,
			Sex:            model.Sex(f.sex),
			HeightCm:       f.heightCm,
			WeightKg:       f.weightKg,
			TargetWeightKg: f.targetWeight,
		},
		Goal: model.GoalTimeline{
			Goal:     model.Goal(f.goal),
			Pace:     model.Pace(f.pace),
			PlanDays: f.days,
		},
		Activity: model.ActivityRoutine{
			ActivityLevel: model.ActivityLevel(f.activity),
			SleepHours:    f.sleepHours,
			StressLevel:   model.StressLevel(f.stress),
		},
		Diet: model.DietaryPreferences{
			DietType:    model.DietType(f.dietType),
			Allergies:   splitList(f.allergies),
			MealsPerDay: f.meals,
			CookingTime: f.cookingTime,
		},
		Medical: model.MedicalConditions{
			Conditions: splitList(f.conditions),
			Notes:      f.notes,
		},
	}
	if err := in.Validate(); err != nil {
		return model.UserIntake{}, err
	}
	return in, nil
}

func addIntakeFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&intake.age, "age", 0, "Age in years")
	fs.StringVar(&intake.sex, "sex", "", "Sex: male, female, or other")
	fs.Float64Var(&intake.heightCm, "height", 0, "Height in cm")
	fs.Float64Var(&intake.weightKg, "weight", 0, "Weight in kg")
	fs.Float64Var(&intake.targetWeight, "target-weight", 0, "Target weight in kg")
	fs.StringVar(&intake.goal, "goal", string(model.GoalMaintain), "Goal: weight-loss, weight-gain, maintain, manage-condition, recomp")
	fs.StringVar(&intake.pace, "pace", string(model.PaceStandard), "Pace: slow, standard, or aggressive")
	fs.StringVar(&intake.activity, "activity", string(model.ActivityModerate), "Activity: sedentary, light, moderate, active, very-active")
	fs.Float64Var(&intake.sleepHours, "sleep", 0, "Typical sleep hours per night")
	fs.StringVar(&intake.stress, "stress", "", "Stress level: low, moderate, or high")
	fs.StringVar(&intake.dietType, "diet-type", "", "Diet: non-vegetarian, vegetarian, or vegan")
	fs.StringVar(&intake.allergies, "allergies", "", "Comma-separated allergens to avoid")
	fs.StringVar(&intake.conditions, "conditions", "", "Comma-separated conditions (diabetes, hypertension, pcos, thyroid, cholesterol)")
	fs.StringVar(&intake.notes, "notes", "", "Free-text medical notes")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")
}

var planTargetsCmd = &cobra.Command{
	Use:     "targets",
	Short:   "Calculate BMR, TDEE, calorie and macro targets",
	Example: `  healthyplates plan targets --age 30 --sex male --height 175 --weight 70 --activity moderate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := intake.intake()
		if err != nil {
			return err
		}
		t := healthplan.CalculateTargets(in)
		if planJSON {
			return printJSON(cmd.OutOrStdout(), "targets", t)
		}
		renderTargets(cmd.OutOrStdout(), t)
		return nil
	},
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a day-by-day meal plan with shopping lists",
	Example: `  healthyplates plan generate --age 28 --sex female --height 160 --weight 62 --goal weight-loss --days 14
  healthyplates plan generate --age 45 --sex male --height 170 --weight 82 --conditions diabetes --meals 4 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := intake.intake()
		if err != nil {
			return err
		}
		return withCatalog(func(cat *catalog.Catalog) error {
			t := healthplan.CalculateTargets(in)
			plan := healthplan.GenerateMealPlan(cat.Planner, in, t)
			if planJSON {
				return printJSON(cmd.OutOrStdout(), "meal plan", struct {
					Targets model.CalculatedTargets `json:"targets"`
					Plan    model.MealPlan          `json:"plan"`
				}{t, plan})
			}
			w := cmd.OutOrStdout()
			renderTargets(w, t)
			renderPlan(w, plan)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planTargetsCmd, planGenerateCmd)

	addIntakeFlags(planTargetsCmd)
	addIntakeFlags(planGenerateCmd)
	planTargetsCmd.Flags().BoolVar(&planJSON, "json", false, "Output as JSON")
	planGenerateCmd.Flags().BoolVar(&planJSON, "json", false, "Output as JSON")
	planGenerateCmd.Flags().IntVar(&intake.days, "days", healthplan.DefaultPlanDays, "Plan length in days (max 28)")
	planGenerateCmd.Flags().IntVar(&intake.meals, "meals", healthplan.DefaultMealsPerDay, "Meals per day (2-5)")
	planGenerateCmd.Flags().StringVar(&intake.cookingTime, "cooking-time", "", `Max prep time per meal, e.g. "30 minutes"`)
}

func renderTargets(w io.Writer, t model.CalculatedTargets) {
	fmt.Fprintf(w, "BMR: %d kcal\nTDEE: %d kcal\nTarget: %d kcal/day (%+d)\n", t.BMR, t.TDEE, t.TargetCalories, t.DailyCalorieDelta)
	fmt.Fprintf(w, "Protein: %dg\nCarbs: %dg\nFat: %dg\n", t.ProteinG, t.CarbsG, t.FatG)
	fmt.Fprintf(w, "Expected change: %+.2f kg/week\n", t.WeeklyWeightChangeKg)
	if t.BMI > 0 {
		fmt.Fprintf(w, "BMI: %.1f (%s)\n", t.BMI, t.BMICategory)
	}
}

func renderPlan(w io.Writer, plan model.MealPlan) {
	for _, d := range plan.Days {
		fmt.Fprintf(w, "\nDay %d: %d kcal  P %.1fg  C %.1fg  F %.1fg\n", d.Day, d.TotalCalories, d.TotalProteinG, d.TotalCarbsG, d.TotalFatG)
		for _, m := range d.Meals {
			note := ""
			if m.Fallback {
				note = " (outside filters)"
			}
			fmt.Fprintf(w, "  %-10s %s, %dg, %d kcal%s\n", m.Slot, m.Recipe, m.PortionGrams, m.Calories, note)
		}
	}
	for _, sl := range plan.ShoppingLists {
		fmt.Fprintf(w, "\nShopping list, week %d:\n", sl.Week)
		for _, c := range sl.Categories {
			names := make([]string, 0, len(c.Items))
			for _, it := range c.Items {
				names = append(names, it.Name)
			}
			fmt.Fprintf(w, "  %s: %s\n", c.Name, strings.Join(names, ", "))
		}
	}
	if len(plan.ConditionNotes) > 0 {
		fmt.Fprintln(w, "\nCondition notes:")
		for _, n := range plan.ConditionNotes {
			fmt.Fprintf(w, "  - %s\n", n)
		}
	}
	if len(plan.Tips) > 0 {
		fmt.Fprintln(w, "\nTips:")
		for _, tip := range plan.Tips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
}
