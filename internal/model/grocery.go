package model

type Diet string

const (
	DietVeg    Diet = "veg"
	DietNonVeg Diet = "non-veg"
)

type Cuisine string

const (
	CuisineSouth Cuisine = "south"
	CuisineNorth Cuisine = "north"
	CuisineMixed Cuisine = "mixed"
)

type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
)

type ProteinPriority string

const (
	ProteinNormal ProteinPriority = "normal"
	ProteinHigh   ProteinPriority = "high"
)

type MealTime string

const (
	MealBreakfast MealTime = "breakfast"
	MealLunch     MealTime = "lunch"
	MealDinner    MealTime = "dinner"
	MealSnack     MealTime = "snack"
)

// GroceryCategories is the fixed display order of grocery item categories.
var GroceryCategories = []string{
	"grains",
	"pulses",
	"vegetables",
	"fruits",
	"dairy",
	"meat-eggs",
	"oils",
	"spices",
	"others",
}

// GroceryTemplateItem is one row of a static grocery template. Template rows
// are shared reference data and must not be mutated.
type GroceryTemplateItem struct {
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	BaseQuantity float64  `json:"base_quantity" yaml:"base_quantity"`
	Unit         string   `json:"unit" yaml:"unit"`
	Storage      string   `json:"storage" yaml:"storage"`
	UseWithin    string   `json:"use_within,omitempty" yaml:"use_within,omitempty"`
	Substitute   string   `json:"substitute,omitempty" yaml:"substitute,omitempty"`
	Aliases      []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

type UserPreferences struct {
	Diet             Diet            `json:"diet"`
	Cuisine          Cuisine         `json:"cuisine"`
	Budget           Budget          `json:"budget"`
	Duration         int             `json:"duration"`
	PeopleCount      int             `json:"people_count"`
	ProteinPriority  ProteinPriority `json:"protein_priority"`
	StaplesAvailable []string        `json:"staples_available"`
	AvoidItems       []string        `json:"avoid_items"`
}

type GeneratedGroceryItem struct {
	GroceryTemplateItem
	ScaledQuantity float64 `json:"scaled_quantity"`
	IsExcluded     bool    `json:"is_excluded"`
}

type RecipeTemplate struct {
	Name           string   `json:"name" yaml:"name"`
	MealTime       MealTime `json:"meal_time" yaml:"meal_time"`
	Cuisine        Cuisine  `json:"cuisine" yaml:"cuisine"`
	Veg            bool     `json:"veg" yaml:"veg"`
	Budget         Budget   `json:"budget" yaml:"budget"`
	KeyIngredients []string `json:"key_ingredients" yaml:"key_ingredients"`
}

type StorageTip struct {
	Item string `json:"item" yaml:"item"`
	Tip  string `json:"tip" yaml:"tip"`
}

type Substitution struct {
	Original   string `json:"original" yaml:"original"`
	Substitute string `json:"substitute" yaml:"substitute"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
}

type CostRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

type RecipesByMeal struct {
	Breakfast []RecipeTemplate `json:"breakfast"`
	Lunch     []RecipeTemplate `json:"lunch"`
	Dinner    []RecipeTemplate `json:"dinner"`
	Snack     []RecipeTemplate `json:"snack"`
}

type GeneratedList struct {
	Items         []GeneratedGroceryItem `json:"items"`
	Recipes       RecipesByMeal          `json:"recipes"`
	StorageTips   []StorageTip           `json:"storage_tips"`
	Substitutions []Substitution         `json:"substitutions"`
	EstimatedCost CostRange              `json:"estimated_cost"`
}
