package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	groceryFile = "grocery.yaml"
	plannerFile = "planner.yaml"
	contentFile = "content.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Grocery holds the reference tables of the grocery list generator.
type Grocery struct {
	Version         int                         `yaml:"version"`
	SouthBase       []model.GroceryTemplateItem `yaml:"south_base"`
	NorthBase       []model.GroceryTemplateItem `yaml:"north_base"`
	MixedNorthTerms []string                    `yaml:"mixed_north_terms"`
	SouthMedium     []model.GroceryTemplateItem `yaml:"south_medium"`
	NorthMedium     []model.GroceryTemplateItem `yaml:"north_medium"`
	SouthNonVeg     []model.GroceryTemplateItem `yaml:"south_non_veg"`
	NorthNonVeg     []model.GroceryTemplateItem `yaml:"north_non_veg"`
	HighProtein     []model.GroceryTemplateItem `yaml:"high_protein"`
	Recipes         []model.RecipeTemplate      `yaml:"recipes"`
	PantryStaples   []string                    `yaml:"pantry_staples"`
	AvoidableItems  []string                    `yaml:"avoidable_items"`
	CostEstimates   map[string]model.CostRange  `yaml:"cost_estimates"`
	StorageTips     []model.StorageTip          `yaml:"storage_tips"`
	Substitutions   []model.Substitution        `yaml:"substitutions"`
}

type ShoppingCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Planner holds the reference tables of the health plan calculator.
type Planner struct {
	Version            int                   `yaml:"version"`
	Recipes            []model.PlannerRecipe `yaml:"recipes"`
	ShoppingCategories []ShoppingCategory    `yaml:"shopping_categories"`
	ConditionNotes     map[string][]string   `yaml:"condition_notes"`
	GoalTips           map[string][]string   `yaml:"goal_tips"`
	StressTips         map[string][]string   `yaml:"stress_tips"`
	SleepTips          []string              `yaml:"sleep_tips"`
	GeneralTips        []string              `yaml:"general_tips"`
}

// Content holds mindfulness practices and greeting templates keyed by
// occasion, then tone.
type Content struct {
	Version   int                            `yaml:"version"`
	Practices []model.Practice               `yaml:"practices"`
	Greetings map[string]map[string][]string `yaml:"greetings"`
}

// Catalog is the full set of reference tables. It is read-only once loaded
// and safe to share between goroutines.
type Catalog struct {
	Grocery *Grocery
	Planner *Planner
	Content *Content
}

// Default loads the tables compiled into the binary.
func Default() (*Catalog, error) {
	return Load("")
}

// Load reads every table, preferring files found in dir over the embedded
// copies. An empty dir means embedded tables only.
func Load(dir string) (*Catalog, error) {
	data, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	src := source{dir: dir, fallback: data}

	cat := &Catalog{
		Grocery: &Grocery{},
		Planner: &Planner{},
		Content: &Content{},
	}
	var g errgroup.Group
	g.Go(func() error { return src.decode(groceryFile, cat.Grocery) })
	g.Go(func() error { return src.decode(plannerFile, cat.Planner) })
	g.Go(func() error { return src.decode(contentFile, cat.Content) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("catalog loaded",
		"dir", dir,
		"grocery_version", cat.Grocery.Version,
		"planner_version", cat.Planner.Version,
		"content_version", cat.Content.Version,
		"planner_recipes", len(cat.Planner.Recipes),
	)
	return cat, nil
}

// Validate rejects tables that would leave a generator with nothing to work
// from. These are loading defects, never user input errors.
func (c *Catalog) Validate() error {
	if len(c.Grocery.SouthBase) == 0 || len(c.Grocery.NorthBase) == 0 {
		return fmt.Errorf("catalog %s: base templates must not be empty", groceryFile)
	}
	for _, list := range [][]model.GroceryTemplateItem{
		c.Grocery.SouthBase, c.Grocery.NorthBase,
		c.Grocery.SouthMedium, c.Grocery.NorthMedium,
		c.Grocery.SouthNonVeg, c.Grocery.NorthNonVeg,
		c.Grocery.HighProtein,
	} {
		for _, it := range list {
			if it.Name == "" || it.BaseQuantity <= 0 {
				return fmt.Errorf("catalog %s: item %q needs a name and a positive base quantity", groceryFile, it.Name)
			}
		}
	}
	if len(c.Planner.Recipes) == 0 {
		return fmt.Errorf("catalog %s: recipe table must not be empty", plannerFile)
	}
	for _, r := range c.Planner.Recipes {
		if r.KcalPer100g <= 0 {
			return fmt.Errorf("catalog %s: recipe %q must have kcal_per_100g > 0", plannerFile, r.Name)
		}
		if len(r.MealTypes) == 0 {
			return fmt.Errorf("catalog %s: recipe %q has no meal types", plannerFile, r.Name)
		}
	}
	if len(c.Content.Practices) == 0 {
		return fmt.Errorf("catalog %s: practices must not be empty", contentFile)
	}
	if len(c.Content.Greetings["general"]["warm"]) == 0 {
		return fmt.Errorf("catalog %s: general/warm greetings are required", contentFile)
	}
	return nil
}

type source struct {
	dir      string
	fallback fs.FS
}

func (s source) decode(name string, out any) error {
	b, err := s.read(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return nil
}

func (s source) read(name string) ([]byte, error) {
	if s.dir != "" {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
	}
	b, err := fs.ReadFile(s.fallback, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog %s: %w", name, err)
	}
	return b, nil
}
