package model

import "strings"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

type Goal string

const (
	GoalWeightLoss      Goal = "weight-loss"
	GoalWeightGain      Goal = "weight-gain"
	GoalMaintain        Goal = "maintain"
	GoalManageCondition Goal = "manage-condition"
	GoalRecomp          Goal = "recomp"
)

type Pace string

const (
	PaceSlow       Pace = "slow"
	PaceStandard   Pace = "standard"
	PaceAggressive Pace = "aggressive"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

type DietType string

const (
	DietTypeNonVegetarian DietType = "non-vegetarian"
	DietTypeVegetarian    DietType = "vegetarian"
	DietTypeVegan         DietType = "vegan"
)

type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

const (
	ConditionDiabetes     = "diabetes"
	ConditionHypertension = "hypertension"
	ConditionPCOS         = "pcos"
	ConditionThyroid      = "thyroid"
	ConditionCholesterol  = "cholesterol"
)

type ProfileMetrics struct {
	Age            int     `json:"age"`
	Sex            Sex     `json:"sex"`
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	TargetWeightKg float64 `json:"target_weight_kg,omitempty"`
}

type GoalTimeline struct {
	Goal     Goal `json:"goal"`
	Pace     Pace `json:"pace"`
	PlanDays int  `json:"plan_days,omitempty"`
}

type ActivityRoutine struct {
	ActivityLevel ActivityLevel `json:"activity_level"`
	SleepHours    float64       `json:"sleep_hours,omitempty"`
	StressLevel   StressLevel   `json:"stress_level,omitempty"`
}

type DietaryPreferences struct {
	DietType    DietType `json:"diet_type"`
	Allergies   []string `json:"allergies,omitempty"`
	MealsPerDay int      `json:"meals_per_day,omitempty"`
	CookingTime string   `json:"cooking_time,omitempty"`
}

type MedicalConditions struct {
	Conditions []string `json:"conditions,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Has reports whether condition is among the stated conditions, ignoring case.
func (m MedicalConditions) Has(condition string) bool {
	for _, c := range m.Conditions {
		if strings.EqualFold(strings.TrimSpace(c), condition) {
			return true
		}
	}
	return false
}

type UserIntake struct {
	Profile  ProfileMetrics     `json:"profile"`
	Goal     GoalTimeline       `json:"goal"`
	Activity ActivityRoutine    `json:"activity"`
	Diet     DietaryPreferences `json:"diet"`
	Medical  MedicalConditions  `json:"medical"`
}

type CalculatedTargets struct {
	BMR                  int     `json:"bmr"`
	TDEE                 int     `json:"tdee"`
	TargetCalories       int     `json:"target_calories"`
	ProteinG             int     `json:"protein_g"`
	CarbsG               int     `json:"carbs_g"`
	FatG                 int     `json:"fat_g"`
	WeeklyWeightChangeKg float64 `json:"weekly_weight_change_kg"`
	DailyCalorieDelta    int     `json:"daily_calorie_delta"`
	BMI                  float64 `json:"bmi"`
	BMICategory          string  `json:"bmi_category"`
}

// PlannerRecipe is a row of the meal planner's recipe table. Macros are per
// 100 g of the prepared dish.
type PlannerRecipe struct {
	Name             string     `json:"name" yaml:"name"`
	MealTypes        []MealTime `json:"meal_types" yaml:"meal_types"`
	KcalPer100g      float64    `json:"kcal_per_100g" yaml:"kcal_per_100g"`
	ProteinPer100g   float64    `json:"protein_per_100g" yaml:"protein_per_100g"`
	CarbsPer100g     float64    `json:"carbs_per_100g" yaml:"carbs_per_100g"`
	FatPer100g       float64    `json:"fat_per_100g" yaml:"fat_per_100g"`
	PrepMinutes      int        `json:"prep_minutes" yaml:"prep_minutes"`
	Allergens        []string   `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	Vegetarian       bool       `json:"vegetarian" yaml:"vegetarian"`
	Vegan            bool       `json:"vegan" yaml:"vegan"`
	DiabetesSafe     bool       `json:"diabetes_safe" yaml:"diabetes_safe"`
	HypertensionSafe bool       `json:"hypertension_safe" yaml:"hypertension_safe"`
	Ingredients      []string   `json:"ingredients" yaml:"ingredients"`
	Instructions     []string   `json:"instructions" yaml:"instructions"`
}

type Meal struct {
	Slot         string   `json:"slot"`
	MealType     MealTime `json:"meal_type"`
	Recipe       string   `json:"recipe"`
	PortionGrams int      `json:"portion_grams"`
	Calories     int      `json:"calories"`
	ProteinG     float64  `json:"protein_g"`
	CarbsG       float64  `json:"carbs_g"`
	FatG         float64  `json:"fat_g"`
	PrepMinutes  int      `json:"prep_minutes"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Fallback     bool     `json:"fallback,omitempty"`
}

type DayPlan struct {
	Day           int     `json:"day"`
	Meals         []Meal  `json:"meals"`
	TotalCalories int     `json:"total_calories"`
	TotalProteinG float64 `json:"total_protein_g"`
	TotalCarbsG   float64 `json:"total_carbs_g"`
	TotalFatG     float64 `json:"total_fat_g"`
}

type ShoppingItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type ShoppingCategory struct {
	Name  string         `json:"name"`
	Items []ShoppingItem `json:"items"`
}

type ShoppingList struct {
	Week       int                `json:"week"`
	Categories []ShoppingCategory `json:"categories"`
}

type MealPlan struct {
	Days           []DayPlan      `json:"days"`
	ShoppingLists  []ShoppingList `json:"shopping_lists"`
	ConditionNotes []string       `json:"condition_notes"`
	Tips           []string       `json:"tips"`
}
