package grocery_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/grocery"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

func loadTables(t *testing.T) *catalog.Grocery {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat.Grocery
}

func basePrefs() model.UserPreferences {
	return model.UserPreferences{
		Diet:            model.DietVeg,
		Cuisine:         model.CuisineSouth,
		Budget:          model.BudgetLow,
		Duration:        7,
		PeopleCount:     1,
		ProteinPriority: model.ProteinNormal,
	}
}

func TestGenerateSouthVegLowWeekMatchesBaseTemplate(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)

	list := grocery.Generate(tables, basePrefs())

	want := make([]model.GeneratedGroceryItem, 0, len(tables.SouthBase))
	for _, it := range tables.SouthBase {
		want = append(want, model.GeneratedGroceryItem{
			GroceryTemplateItem: it,
			ScaledQuantity:      math.Ceil(it.BaseQuantity*10) / 10,
		})
	}
	if diff := cmp.Diff(want, list.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	for _, it := range list.Items {
		if it.IsExcluded {
			t.Fatalf("expected zero exclusions, got %q excluded", it.Name)
		}
	}
}

func TestGenerateThreeDaysScalesByFactor(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.Duration = 3

	list := grocery.Generate(tables, prefs)
	if len(list.Items) != len(tables.SouthBase) {
		t.Fatalf("expected %d items, got %d", len(tables.SouthBase), len(list.Items))
	}
	byName := map[string]float64{}
	for _, it := range list.Items {
		byName[it.Name] = it.ScaledQuantity
	}
	cases := map[string]float64{
		"Sona Masoori Rice": 900,  // 2000 × 0.45
		"Drumstick":         1.4,  // 3 × 0.45 = 1.35
		"Milk":              1575, // 3500 × 0.45
		"Curry Leaves":      0.5,  // 1 × 0.45
	}
	for name, want := range cases {
		if got := byName[name]; got != want {
			t.Fatalf("expected %s scaled to %v, got %v", name, want, got)
		}
	}
}

func TestGenerateScalesLinearlyWithPeople(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.PeopleCount = 4

	list := grocery.Generate(tables, prefs)
	for _, it := range list.Items {
		want := math.Ceil(it.BaseQuantity*4*10) / 10
		if it.ScaledQuantity != want {
			t.Fatalf("expected %s scaled to %v, got %v", it.Name, want, it.ScaledQuantity)
		}
		if it.ScaledQuantity < it.BaseQuantity {
			t.Fatalf("scaled quantity of %s dropped below base", it.Name)
		}
	}
	if list.EstimatedCost != (model.CostRange{Min: 4800, Max: 7200}) {
		t.Fatalf("expected cost 4800-7200, got %+v", list.EstimatedCost)
	}
}

func TestScaleQuantityRoundsUpToOneDecimal(t *testing.T) {
	t.Parallel()
	cases := []struct {
		base, scale, want float64
	}{
		{2000, 1, 2000},
		{3, 0.45, 1.4},
		{1, 0.45, 0.5},
		{6, 0.45 * 2, 5.4},
		{250, 0.45 * 3, 337.5},
	}
	for _, tc := range cases {
		if got := grocery.ScaleQuantity(tc.base, tc.scale); got != tc.want {
			t.Fatalf("ScaleQuantity(%v, %v) = %v, want %v", tc.base, tc.scale, got, tc.want)
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := model.UserPreferences{
		Diet:             model.DietNonVeg,
		Cuisine:          model.CuisineMixed,
		Budget:           model.BudgetMedium,
		Duration:         3,
		PeopleCount:      3,
		ProteinPriority:  model.ProteinHigh,
		StaplesAvailable: []string{"rice", "salt"},
		AvoidItems:       []string{"brinjal"},
	}
	first := grocery.Generate(tables, prefs)
	second := grocery.Generate(tables, prefs)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical lists (-first +second):\n%s", diff)
	}
}

func TestGenerateNeverListsAnItemTwice(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	for _, cuisine := range []model.Cuisine{model.CuisineSouth, model.CuisineNorth, model.CuisineMixed} {
		prefs := model.UserPreferences{
			Diet:            model.DietNonVeg,
			Cuisine:         cuisine,
			Budget:          model.BudgetMedium,
			Duration:        7,
			PeopleCount:     2,
			ProteinPriority: model.ProteinHigh,
		}
		list := grocery.Generate(tables, prefs)
		seen := map[string]bool{}
		for _, it := range list.Items {
			key := grocery.ItemKey(it.Name)
			if seen[key] {
				t.Fatalf("%s: item %q listed twice", cuisine, it.Name)
			}
			seen[key] = true
		}
	}
}

func TestGenerateDedupesNormalizedNames(t *testing.T) {
	t.Parallel()
	tables := &catalog.Grocery{
		SouthBase:   []model.GroceryTemplateItem{{Name: "Toor Dal", Category: "pulses", BaseQuantity: 500, Unit: "g"}},
		SouthMedium: []model.GroceryTemplateItem{{Name: "  toor   DAL ", Category: "pulses", BaseQuantity: 900, Unit: "g"}},
	}
	prefs := basePrefs()
	prefs.Budget = model.BudgetMedium

	list := grocery.Generate(tables, prefs)
	if len(list.Items) != 1 {
		t.Fatalf("expected one deduped item, got %d", len(list.Items))
	}
	if list.Items[0].BaseQuantity != 500 {
		t.Fatalf("expected first occurrence to win, got base %v", list.Items[0].BaseQuantity)
	}
}

func TestGenerateExclusionMatchesTermsEitherDirection(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.StaplesAvailable = []string{"Rice"}
	prefs.AvoidItems = []string{"curd (yogurt) tub"}

	list := grocery.Generate(tables, prefs)
	for _, it := range list.Items {
		name := strings.ToLower(it.Name)
		want := strings.Contains(name, "rice") || name == "curd (yogurt)"
		if it.IsExcluded != want {
			t.Fatalf("expected %q excluded=%v, got %v", it.Name, want, it.IsExcluded)
		}
	}
}

func TestGenerateExcludesByAlias(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.AvoidItems = []string{"Eggplant"}

	list := grocery.Generate(tables, prefs)
	excluded := 0
	for _, it := range list.Items {
		if it.IsExcluded {
			excluded++
			if it.Name != "Brinjal" {
				t.Fatalf("expected only Brinjal excluded, got %q", it.Name)
			}
		}
	}
	if excluded != 1 {
		t.Fatalf("expected 1 exclusion, got %d", excluded)
	}
}

func TestGenerateUnmatchedItemsAreNeverExcluded(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.Cuisine = model.CuisineNorth
	prefs.StaplesAvailable = tables.PantryStaples
	prefs.AvoidItems = tables.AvoidableItems

	list := grocery.Generate(tables, prefs)
	terms := append(append([]string{}, tables.PantryStaples...), tables.AvoidableItems...)
	for _, it := range list.Items {
		matched := false
		for _, term := range terms {
			if grocery.MatchesTerm(it.GroceryTemplateItem, term) {
				matched = true
				break
			}
		}
		if it.IsExcluded != matched {
			t.Fatalf("expected %q excluded=%v, got %v", it.Name, matched, it.IsExcluded)
		}
	}
}

func TestGenerateVegNeverGetsEggs(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.ProteinPriority = model.ProteinHigh

	list := grocery.Generate(tables, prefs)
	foundSoya := false
	for _, it := range list.Items {
		if strings.Contains(strings.ToLower(it.Name), "egg") {
			t.Fatalf("veg list must not contain %q", it.Name)
		}
		if it.Name == "Soya Chunks" {
			foundSoya = true
		}
	}
	if !foundSoya {
		t.Fatalf("expected high-protein additions in veg list")
	}

	prefs.Diet = model.DietNonVeg
	list = grocery.Generate(tables, prefs)
	foundEggs := false
	for _, it := range list.Items {
		if it.Name == "Boiled Eggs" {
			foundEggs = true
		}
	}
	if !foundEggs {
		t.Fatalf("expected boiled eggs for non-veg high protein")
	}
}

func TestGenerateMixedAddsNorthSubset(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.Cuisine = model.CuisineMixed

	list := grocery.Generate(tables, prefs)
	names := map[string]bool{}
	for _, it := range list.Items {
		names[it.Name] = true
	}
	for _, want := range []string{"Sona Masoori Rice", "Whole Wheat Atta", "Paneer", "Rajma (Kidney Beans)"} {
		if !names[want] {
			t.Fatalf("expected mixed list to include %q", want)
		}
	}
	if names["Basmati Rice"] {
		t.Fatalf("expected north items outside the mixed terms to be left out")
	}
}

func TestGenerateRecipesFollowFilters(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()

	list := grocery.Generate(tables, prefs)
	all := [][]model.RecipeTemplate{list.Recipes.Breakfast, list.Recipes.Lunch, list.Recipes.Dinner, list.Recipes.Snack}
	total := 0
	for _, bucket := range all {
		for _, r := range bucket {
			total++
			if !r.Veg {
				t.Fatalf("veg preference got non-veg recipe %q", r.Name)
			}
			if r.Budget != model.BudgetLow {
				t.Fatalf("low budget got %s recipe %q", r.Budget, r.Name)
			}
			if r.Cuisine != model.CuisineSouth && r.Cuisine != model.CuisineMixed {
				t.Fatalf("south cuisine got %s recipe %q", r.Cuisine, r.Name)
			}
		}
	}
	if total == 0 {
		t.Fatalf("expected at least one recipe suggestion")
	}
	for _, r := range list.Recipes.Breakfast {
		if r.MealTime != model.MealBreakfast {
			t.Fatalf("recipe %q bucketed under breakfast with meal time %s", r.Name, r.MealTime)
		}
	}
}

func TestGenerateCostFallsBackToDefault(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.Duration = 5
	prefs.PeopleCount = 2

	list := grocery.Generate(tables, prefs)
	if list.EstimatedCost != (model.CostRange{Min: 2000, Max: 4000}) {
		t.Fatalf("expected default cost 2000-4000, got %+v", list.EstimatedCost)
	}
	if list.EstimatedCost.Min > list.EstimatedCost.Max {
		t.Fatalf("cost min above max: %+v", list.EstimatedCost)
	}
}

func TestGenerateTipsOnlyForKeptItems(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()

	list := grocery.Generate(tables, prefs)
	if !hasTip(list.StorageTips, "Onion/Potato") {
		t.Fatalf("expected onion/potato storage tip, got %+v", list.StorageTips)
	}
	if !hasSubstitution(list.Substitutions, "Milk") {
		t.Fatalf("expected milk substitution, got %+v", list.Substitutions)
	}

	prefs.AvoidItems = []string{"Onion", "Milk"}
	list = grocery.Generate(tables, prefs)
	if hasTip(list.StorageTips, "Onion/Potato") {
		t.Fatalf("expected onion tip dropped once onion is excluded")
	}
	if hasSubstitution(list.Substitutions, "Milk") {
		t.Fatalf("expected milk substitution dropped once milk is excluded")
	}
	if hasTip(list.StorageTips, "Paneer") {
		t.Fatalf("south veg list has no paneer, tip should not appear")
	}
}

func TestGenerateUnknownCuisineYieldsEmptyBase(t *testing.T) {
	t.Parallel()
	tables := loadTables(t)
	prefs := basePrefs()
	prefs.Cuisine = "coastal"

	list := grocery.Generate(tables, prefs)
	if len(list.Items) != 0 {
		t.Fatalf("expected no items for unknown cuisine, got %d", len(list.Items))
	}
}

func hasTip(tips []model.StorageTip, item string) bool {
	for _, tip := range tips {
		if tip.Item == item {
			return true
		}
	}
	return false
}

func hasSubstitution(subs []model.Substitution, original string) bool {
	for _, s := range subs {
		if s.Original == original {
			return true
		}
	}
	return false
}
