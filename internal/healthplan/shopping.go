package healthplan

import (
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	othersCategory  = "Others"
	asNeeded        = "As needed"
	daysPerShopping = 7
)

// ShoppingLists emits one list per 7-day chunk of the plan. Ingredients go
// to the first category with a matching keyword and repeat at most once per
// category per week. Quantities are not aggregated.
func ShoppingLists(categories []catalog.ShoppingCategory, days []model.DayPlan) []model.ShoppingList {
	lists := make([]model.ShoppingList, 0, (len(days)+daysPerShopping-1)/daysPerShopping)
	for start := 0; start < len(days); start += daysPerShopping {
		end := min(start+daysPerShopping, len(days))
		lists = append(lists, weekList(categories, days[start:end], start/daysPerShopping+1))
	}
	return lists
}

func weekList(categories []catalog.ShoppingCategory, days []model.DayPlan, week int) model.ShoppingList {
	buckets := make([][]model.ShoppingItem, len(categories)+1)
	seen := make([]map[string]bool, len(categories)+1)
	for i := range seen {
		seen[i] = map[string]bool{}
	}
	for _, d := range days {
		for _, m := range d.Meals {
			for _, ing := range m.Ingredients {
				idx := Classify(categories, ing)
				if idx < 0 {
					idx = len(categories)
				}
				if seen[idx][ing] {
					continue
				}
				seen[idx][ing] = true
				buckets[idx] = append(buckets[idx], model.ShoppingItem{Name: ing, Quantity: asNeeded})
			}
		}
	}

	list := model.ShoppingList{Week: week, Categories: make([]model.ShoppingCategory, 0, len(buckets))}
	for i, items := range buckets {
		if len(items) == 0 {
			continue
		}
		name := othersCategory
		if i < len(categories) {
			name = categories[i].Name
		}
		list.Categories = append(list.Categories, model.ShoppingCategory{Name: name, Items: items})
	}
	return list
}

// Classify returns the index of the first category whose keyword occurs in
// the ingredient, or -1.
func Classify(categories []catalog.ShoppingCategory, ingredient string) int {
	lower := strings.ToLower(ingredient)
	for i, c := range categories {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				return i
			}
		}
	}
	return -1
}
