package grocery

import (
	"math"
	"strconv"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

// FormatQuantity renders a scaled quantity for display. Grams of 1000 or
// more switch to kilograms and counts carry no unit.
func FormatQuantity(qty float64, unit string) string {
	switch {
	case unit == "g" && qty >= 1000:
		return formatNumber(qty/1000) + " kg"
	case unit == "count" || unit == "":
		return formatNumber(qty)
	default:
		return formatNumber(qty) + " " + unit
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

// CategoryGroup is one section of a printed grocery list.
type CategoryGroup struct {
	Category string                       `json:"category"`
	Items    []model.GeneratedGroceryItem `json:"items"`
}

// Summary groups a list's items for display.
type Summary struct {
	Groups   []CategoryGroup `json:"groups"`
	ToBuy    int             `json:"to_buy"`
	Excluded int             `json:"excluded"`
}

// Summarize groups items by category in the fixed category order. Items with
// a category outside that order land in "others". Order within a group
// follows generation order.
func Summarize(list model.GeneratedList) Summary {
	known := make(map[string]int, len(model.GroceryCategories))
	for i, c := range model.GroceryCategories {
		known[c] = i
	}
	others := known["others"]

	buckets := make([][]model.GeneratedGroceryItem, len(model.GroceryCategories))
	var s Summary
	for _, it := range list.Items {
		if it.IsExcluded {
			s.Excluded++
		} else {
			s.ToBuy++
		}
		idx, ok := known[it.Category]
		if !ok {
			idx = others
		}
		buckets[idx] = append(buckets[idx], it)
	}
	for i, items := range buckets {
		if len(items) == 0 {
			continue
		}
		s.Groups = append(s.Groups, CategoryGroup{Category: model.GroceryCategories[i], Items: items})
	}
	return s
}
