package healthplan

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	DefaultPlanDays    = 7
	MaxPlanDays        = 28
	DefaultMealsPerDay = 3
	// MaxPortionGrams caps a single serving regardless of the calorie target.
	MaxPortionGrams = 400
	// RepeatWindow is how many previous days are checked before a recipe may
	// return to the same slot.
	RepeatWindow       = 2
	defaultCookMinutes = 45
)

type slot struct {
	name     string
	mealType model.MealTime
}

var slotLayouts = map[int][]slot{
	2: {
		{"breakfast", model.MealBreakfast},
		{"dinner", model.MealDinner},
	},
	3: {
		{"breakfast", model.MealBreakfast},
		{"lunch", model.MealLunch},
		{"dinner", model.MealDinner},
	},
	4: {
		{"breakfast", model.MealBreakfast},
		{"lunch", model.MealLunch},
		{"evening-snack", model.MealSnack},
		{"dinner", model.MealDinner},
	},
	5: {
		{"breakfast", model.MealBreakfast},
		{"morning-snack", model.MealSnack},
		{"lunch", model.MealLunch},
		{"evening-snack", model.MealSnack},
		{"dinner", model.MealDinner},
	},
}

// GenerateMealPlan assembles a day-by-day plan hitting the calorie target,
// weekly shopping lists and guidance notes. Identical inputs always produce
// identical plans.
func GenerateMealPlan(tables *catalog.Planner, in model.UserIntake, t model.CalculatedTargets) model.MealPlan {
	days := PlanDays(in.Goal.PlanDays)
	slots := mealSlots(in.Diet.MealsPerDay)
	pool := FilterRecipes(tables.Recipes, in)
	perMeal := float64(t.TargetCalories) / float64(len(slots))

	plan := model.MealPlan{Days: make([]model.DayPlan, 0, days)}
	history := make([][]string, len(slots))
	for day := 1; day <= days; day++ {
		dp := model.DayPlan{Day: day, Meals: make([]model.Meal, 0, len(slots))}
		used := make(map[string]bool, len(slots))
		for i, s := range slots {
			r, fallback, ok := choose(tables.Recipes, pool, s.mealType, used, recent(history[i]), day, i)
			if !ok {
				continue
			}
			used[r.Name] = true
			history[i] = append(history[i], r.Name)

			m := serve(r, s, perMeal)
			m.Fallback = fallback
			dp.Meals = append(dp.Meals, m)
			dp.TotalCalories += m.Calories
			dp.TotalProteinG += m.ProteinG
			dp.TotalCarbsG += m.CarbsG
			dp.TotalFatG += m.FatG
		}
		dp.TotalProteinG = round1(dp.TotalProteinG)
		dp.TotalCarbsG = round1(dp.TotalCarbsG)
		dp.TotalFatG = round1(dp.TotalFatG)
		plan.Days = append(plan.Days, dp)
	}

	plan.ShoppingLists = ShoppingLists(tables.ShoppingCategories, plan.Days)
	plan.ConditionNotes, plan.Tips = Guidance(tables, in)
	return plan
}

// PlanDays resolves the requested plan length: zero means a week and the
// result is clamped to 1..28.
func PlanDays(requested int) int {
	switch {
	case requested == 0:
		return DefaultPlanDays
	case requested < 1:
		return 1
	case requested > MaxPlanDays:
		return MaxPlanDays
	}
	return requested
}

// SlotNames lists the meal slots used for a meals-per-day setting.
func SlotNames(mealsPerDay int) []string {
	slots := mealSlots(mealsPerDay)
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.name
	}
	return names
}

func mealSlots(mealsPerDay int) []slot {
	switch {
	case mealsPerDay == 0:
		mealsPerDay = DefaultMealsPerDay
	case mealsPerDay < 2:
		mealsPerDay = 2
	case mealsPerDay > 5:
		mealsPerDay = 5
	}
	return slotLayouts[mealsPerDay]
}

// FilterRecipes drops recipes that clash with allergies, diet type, medical
// conditions or the cooking time limit.
func FilterRecipes(recipes []model.PlannerRecipe, in model.UserIntake) []model.PlannerRecipe {
	limit := CookingTimeLimit(in.Diet.CookingTime)
	diabetic := in.Medical.Has(model.ConditionDiabetes)
	hypertensive := in.Medical.Has(model.ConditionHypertension)

	out := make([]model.PlannerRecipe, 0, len(recipes))
	for _, r := range recipes {
		if sharesAllergen(r.Allergens, in.Diet.Allergies) {
			continue
		}
		if in.Diet.DietType == model.DietTypeVegetarian && !r.Vegetarian {
			continue
		}
		if in.Diet.DietType == model.DietTypeVegan && !r.Vegan {
			continue
		}
		if diabetic && !r.DiabetesSafe {
			continue
		}
		if hypertensive && !r.HypertensionSafe {
			continue
		}
		if r.PrepMinutes > limit {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CookingTimeLimit reads the first integer in a cooking time answer such as
// "30 minutes" or "under-15". Anything without a positive number means 45.
func CookingTimeLimit(value string) int {
	start := strings.IndexFunc(value, unicode.IsDigit)
	if start < 0 {
		return defaultCookMinutes
	}
	end := start
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(value[start:end])
	if err != nil || n <= 0 {
		return defaultCookMinutes
	}
	return n
}

func sharesAllergen(allergens, allergies []string) bool {
	for _, a := range allergens {
		for _, b := range allergies {
			if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
				return true
			}
		}
	}
	return false
}

// choose picks a recipe for one slot, widening the candidate set tier by tier
// until something is available. Only the last tier, which ignores the
// user's filters, reports fallback.
func choose(all, pool []model.PlannerRecipe, mealType model.MealTime, used, recentNames map[string]bool, day, slotIdx int) (model.PlannerRecipe, bool, bool) {
	rng := rand.New(rand.NewPCG(uint64(day), uint64(slotIdx)))

	tier := filter(pool, func(r model.PlannerRecipe) bool {
		return servesAs(r, mealType) && !used[r.Name]
	})
	if len(tier) > 0 {
		if fresh := filter(tier, func(r model.PlannerRecipe) bool { return !recentNames[r.Name] }); len(fresh) > 0 {
			tier = fresh
		}
		return tier[rng.IntN(len(tier))], false, true
	}
	if tier := filter(pool, func(r model.PlannerRecipe) bool { return !used[r.Name] }); len(tier) > 0 {
		return tier[rng.IntN(len(tier))], false, true
	}
	if len(pool) > 0 {
		return pool[rng.IntN(len(pool))], false, true
	}
	if len(all) > 0 {
		return all[rng.IntN(len(all))], true, true
	}
	return model.PlannerRecipe{}, false, false
}

func recent(history []string) map[string]bool {
	start := len(history) - RepeatWindow
	if start < 0 {
		start = 0
	}
	names := make(map[string]bool, RepeatWindow)
	for _, n := range history[start:] {
		names[n] = true
	}
	return names
}

func filter(recipes []model.PlannerRecipe, keep func(model.PlannerRecipe) bool) []model.PlannerRecipe {
	var out []model.PlannerRecipe
	for _, r := range recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func servesAs(r model.PlannerRecipe, mealType model.MealTime) bool {
	for _, mt := range r.MealTypes {
		if mt == mealType {
			return true
		}
	}
	return false
}

// serve sizes a portion for the per-meal target. The portion is capped, and
// the served calories and macros follow the capped weight.
func serve(r model.PlannerRecipe, s slot, perMeal float64) model.Meal {
	grams := MaxPortionGrams
	if r.KcalPer100g > 0 {
		grams = int(math.Min(math.Round(100*perMeal/r.KcalPer100g), MaxPortionGrams))
	}
	g := float64(grams) / 100
	return model.Meal{
		Slot:         s.name,
		MealType:     s.mealType,
		Recipe:       r.Name,
		PortionGrams: grams,
		Calories:     int(math.Round(g * r.KcalPer100g)),
		ProteinG:     round1(g * r.ProteinPer100g),
		CarbsG:       round1(g * r.CarbsPer100g),
		FatG:         round1(g * r.FatPer100g),
		PrepMinutes:  r.PrepMinutes,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
