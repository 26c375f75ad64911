package grocery

import (
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

// matcher decides exclusion from the user's "already have" and "avoid"
// lists. Matching is case-insensitive substring containment in either
// direction, so "rice" excludes "Sona Masoori Rice" and "Curd" excludes
// "Curd (Yogurt)". A declared alias must match a term exactly.
type matcher struct {
	terms []string
}

func newMatcher(lists ...[]string) matcher {
	var m matcher
	for _, list := range lists {
		for _, t := range list {
			t = ItemKey(t)
			if t != "" {
				m.terms = append(m.terms, t)
			}
		}
	}
	return m
}

func (m matcher) excludes(it model.GroceryTemplateItem) bool {
	if len(m.terms) == 0 {
		return false
	}
	name := ItemKey(it.Name)
	for _, t := range m.terms {
		if strings.Contains(name, t) || strings.Contains(t, name) {
			return true
		}
		for _, a := range it.Aliases {
			if ItemKey(a) == t {
				return true
			}
		}
	}
	return false
}

// MatchesTerm reports whether a single term would exclude the item.
func MatchesTerm(it model.GroceryTemplateItem, term string) bool {
	return newMatcher([]string{term}).excludes(it)
}
