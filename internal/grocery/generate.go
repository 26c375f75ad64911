package grocery

import (
	"fmt"
	"math"
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	threeDayFactor = 0.45
	eggTerm        = "egg"
)

var defaultCost = model.CostRange{Min: 1000, Max: 2000}

// Generate builds a grocery list from the reference tables. Every rule layer
// only adds items; nothing is removed once accumulated. Generate never fails:
// values outside the known enums fall through to the default branches.
func Generate(t *catalog.Grocery, prefs model.UserPreferences) model.GeneratedList {
	items := baseItems(t, prefs.Cuisine)
	if prefs.Budget == model.BudgetMedium {
		items = appendUnique(items, forCuisine(prefs.Cuisine, t.SouthMedium, t.NorthMedium))
	}
	if prefs.Diet == model.DietNonVeg {
		items = appendUnique(items, forCuisine(prefs.Cuisine, t.SouthNonVeg, t.NorthNonVeg))
	}
	if prefs.ProteinPriority == model.ProteinHigh {
		extra := make([]model.GroceryTemplateItem, 0, len(t.HighProtein))
		for _, it := range t.HighProtein {
			if prefs.Diet != model.DietNonVeg && strings.Contains(strings.ToLower(it.Name), eggTerm) {
				continue
			}
			extra = append(extra, it)
		}
		items = appendUnique(items, extra)
	}

	scale := float64(prefs.PeopleCount) * durationFactor(prefs.Duration)
	terms := newMatcher(prefs.StaplesAvailable, prefs.AvoidItems)

	out := model.GeneratedList{
		Items:   make([]model.GeneratedGroceryItem, 0, len(items)),
		Recipes: matchRecipes(t.Recipes, prefs),
	}
	for _, it := range items {
		out.Items = append(out.Items, model.GeneratedGroceryItem{
			GroceryTemplateItem: it,
			ScaledQuantity:      ScaleQuantity(it.BaseQuantity, scale),
			IsExcluded:          terms.excludes(it),
		})
	}
	out.EstimatedCost = estimateCost(t.CostEstimates, prefs)
	kept := keptNames(out.Items)
	out.StorageTips = matchStorageTips(t.StorageTips, kept)
	out.Substitutions = matchSubstitutions(t.Substitutions, kept)
	return out
}

// ScaleQuantity rounds base × scale up to one decimal place.
func ScaleQuantity(base, scale float64) float64 {
	tenths := base * scale * 10
	// Drop float noise such as 13.500000000000002 before taking the ceiling.
	tenths = math.Round(tenths*1e6) / 1e6
	return math.Ceil(tenths) / 10
}

func durationFactor(days int) float64 {
	if days == 3 {
		return threeDayFactor
	}
	return 1
}

func baseItems(t *catalog.Grocery, cuisine model.Cuisine) []model.GroceryTemplateItem {
	var items []model.GroceryTemplateItem
	switch cuisine {
	case model.CuisineSouth, model.CuisineMixed:
		items = append(items, t.SouthBase...)
	case model.CuisineNorth:
		items = append(items, t.NorthBase...)
	default:
		return make([]model.GroceryTemplateItem, 0)
	}
	if cuisine == model.CuisineMixed {
		subset := make([]model.GroceryTemplateItem, 0)
		for _, it := range t.NorthBase {
			if containsAnyFold(it.Name, t.MixedNorthTerms) {
				subset = append(subset, it)
			}
		}
		items = appendUnique(items, subset)
	}
	return items
}

func forCuisine(cuisine model.Cuisine, south, north []model.GroceryTemplateItem) []model.GroceryTemplateItem {
	if cuisine == model.CuisineNorth {
		return north
	}
	return south
}

// appendUnique appends the items of extra whose normalized name is not
// already present. The first occurrence wins.
func appendUnique(items, extra []model.GroceryTemplateItem) []model.GroceryTemplateItem {
	seen := make(map[string]struct{}, len(items)+len(extra))
	for _, it := range items {
		seen[ItemKey(it.Name)] = struct{}{}
	}
	for _, it := range extra {
		key := ItemKey(it.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, it)
	}
	return items
}

// ItemKey is the identity used to deduplicate grocery items across rule
// layers: lowercase, trimmed, inner whitespace collapsed.
func ItemKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func matchRecipes(recipes []model.RecipeTemplate, prefs model.UserPreferences) model.RecipesByMeal {
	out := model.RecipesByMeal{
		Breakfast: make([]model.RecipeTemplate, 0),
		Lunch:     make([]model.RecipeTemplate, 0),
		Dinner:    make([]model.RecipeTemplate, 0),
		Snack:     make([]model.RecipeTemplate, 0),
	}
	for _, r := range recipes {
		cuisineOK := r.Cuisine == prefs.Cuisine || r.Cuisine == model.CuisineMixed || prefs.Cuisine == model.CuisineMixed
		dietOK := prefs.Diet == model.DietNonVeg || r.Veg
		budgetOK := prefs.Budget == model.BudgetMedium || r.Budget == model.BudgetLow
		if !cuisineOK || !dietOK || !budgetOK {
			continue
		}
		switch r.MealTime {
		case model.MealBreakfast:
			out.Breakfast = append(out.Breakfast, r)
		case model.MealLunch:
			out.Lunch = append(out.Lunch, r)
		case model.MealDinner:
			out.Dinner = append(out.Dinner, r)
		case model.MealSnack:
			out.Snack = append(out.Snack, r)
		}
	}
	return out
}

// CostKey is the lookup key of the cost estimate table.
func CostKey(diet model.Diet, budget model.Budget, duration int) string {
	return fmt.Sprintf("%s-%s-%d", diet, budget, duration)
}

func estimateCost(table map[string]model.CostRange, prefs model.UserPreferences) model.CostRange {
	base, ok := table[CostKey(prefs.Diet, prefs.Budget, prefs.Duration)]
	if !ok {
		base = defaultCost
	}
	people := float64(prefs.PeopleCount)
	return model.CostRange{
		Min: int(math.Round(float64(base.Min) * people)),
		Max: int(math.Round(float64(base.Max) * people)),
	}
}

func keptNames(items []model.GeneratedGroceryItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.IsExcluded {
			continue
		}
		names = append(names, strings.ToLower(it.Name))
	}
	return names
}

func matchStorageTips(tips []model.StorageTip, kept []string) []model.StorageTip {
	out := make([]model.StorageTip, 0)
	for _, tip := range tips {
		subject, _, _ := strings.Cut(tip.Item, "/")
		if anyContains(kept, subject) {
			out = append(out, tip)
		}
	}
	return out
}

func matchSubstitutions(subs []model.Substitution, kept []string) []model.Substitution {
	out := make([]model.Substitution, 0)
	for _, s := range subs {
		if anyContains(kept, s.Original) {
			out = append(out, s)
		}
	}
	return out
}

// anyContains reports whether term is a substring of any of the lowercase names.
func anyContains(names []string, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, n := range names {
		if strings.Contains(n, term) {
			return true
		}
	}
	return false
}

func containsAnyFold(name string, terms []string) bool {
	lower := []string{strings.ToLower(name)}
	for _, t := range terms {
		if anyContains(lower, t) {
			return true
		}
	}
	return false
}
