// Package content selects static wellness content from the catalog.
package content

import (
	"sort"
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	DefaultOccasion = "general"
	DefaultTone     = "warm"
	defaultName     = "friend"
	namePlaceholder = "{name}"
)

// Practices filters the practice table by category (empty matches all) and
// duration (maxMinutes <= 0 means no limit), preserving catalog order.
func Practices(c *catalog.Content, category string, maxMinutes int) []model.Practice {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]model.Practice, 0, len(c.Practices))
	for _, p := range c.Practices {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if maxMinutes > 0 && p.Minutes > maxMinutes {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct practice categories in first-seen order.
func Categories(c *catalog.Content) []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, p := range c.Practices {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Greeting renders one greeting template. variant indexes the templates for
// the occasion and tone, wrapping around; negative variants count from the
// end. An unknown occasion or tone falls back to general/warm.
func Greeting(c *catalog.Content, occasion, tone, name string, variant int) string {
	templates := lookup(c, occasion, tone)
	if len(templates) == 0 {
		return ""
	}
	n := len(templates)
	idx := ((variant % n) + n) % n

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	return strings.ReplaceAll(templates[idx], namePlaceholder, name)
}

// Occasions returns the greeting occasions sorted by name.
func Occasions(c *catalog.Content) []string {
	out := make([]string, 0, len(c.Greetings))
	for k := range c.Greetings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(c *catalog.Content, occasion, tone string) []string {
	occasion = strings.ToLower(strings.TrimSpace(occasion))
	tone = strings.ToLower(strings.TrimSpace(tone))
	byTone, ok := c.Greetings[occasion]
	if !ok {
		byTone = c.Greetings[DefaultOccasion]
	}
	if t := byTone[tone]; len(t) > 0 {
		return t
	}
	if t := byTone[DefaultTone]; len(t) > 0 {
		return t
	}
	return c.Greetings[DefaultOccasion][DefaultTone]
}
