package model

import (
	"fmt"
	"strings"
)

// Intake caps mirror the limits the planner form enforces.
const (
	MaxAgeYears = 60
	MaxHeightCm = 225
	MaxWeightKg = 200
)

func ParseDiet(value string) (Diet, error) {
	switch d := Diet(normalizeEnum(value)); d {
	case DietVeg, DietNonVeg:
		return d, nil
	}
	return "", fmt.Errorf("invalid diet %q (expected veg or non-veg)", value)
}

func ParseCuisine(value string) (Cuisine, error) {
	switch c := Cuisine(normalizeEnum(value)); c {
	case CuisineSouth, CuisineNorth, CuisineMixed:
		return c, nil
	}
	return "", fmt.Errorf("invalid cuisine %q (expected south, north, or mixed)", value)
}

func ParseBudget(value string) (Budget, error) {
	switch b := Budget(normalizeEnum(value)); b {
	case BudgetLow, BudgetMedium:
		return b, nil
	}
	return "", fmt.Errorf("invalid budget %q (expected low or medium)", value)
}

func ParseProteinPriority(value string) (ProteinPriority, error) {
	switch p := ProteinPriority(normalizeEnum(value)); p {
	case ProteinNormal, ProteinHigh:
		return p, nil
	case "":
		return ProteinNormal, nil
	}
	return "", fmt.Errorf("invalid protein priority %q (expected normal or high)", value)
}

// Validate checks the enum fields and normalizes the free-text lists in place.
func (p *UserPreferences) Validate() error {
	var err error
	if p.Diet, err = ParseDiet(string(p.Diet)); err != nil {
		return err
	}
	if p.Cuisine, err = ParseCuisine(string(p.Cuisine)); err != nil {
		return err
	}
	if p.Budget, err = ParseBudget(string(p.Budget)); err != nil {
		return err
	}
	if p.ProteinPriority, err = ParseProteinPriority(string(p.ProteinPriority)); err != nil {
		return err
	}
	if p.Duration != 3 && p.Duration != 7 {
		return fmt.Errorf("invalid duration %d (expected 3 or 7 days)", p.Duration)
	}
	if p.PeopleCount < 1 {
		return fmt.Errorf("people count must be >= 1")
	}
	p.StaplesAvailable = CleanList(p.StaplesAvailable)
	p.AvoidItems = CleanList(p.AvoidItems)
	return nil
}

// Validate checks the intake enums and the form range caps.
func (in *UserIntake) Validate() error {
	prof := &in.Profile
	if prof.Age <= 0 || prof.Age > MaxAgeYears {
		return fmt.Errorf("age must be between 1 and %d", MaxAgeYears)
	}
	if prof.HeightCm <= 0 || prof.HeightCm > MaxHeightCm {
		return fmt.Errorf("height must be between 1 and %d cm", MaxHeightCm)
	}
	if prof.WeightKg <= 0 || prof.WeightKg > MaxWeightKg {
		return fmt.Errorf("weight must be between 1 and %d kg", MaxWeightKg)
	}
	switch s := Sex(normalizeEnum(string(prof.Sex))); s {
	case SexMale, SexFemale, SexOther:
		prof.Sex = s
	default:
		return fmt.Errorf("invalid sex %q (expected male, female, or other)", prof.Sex)
	}

	switch g := Goal(normalizeEnum(string(in.Goal.Goal))); g {
	case GoalWeightLoss, GoalWeightGain, GoalMaintain, GoalManageCondition, GoalRecomp:
		in.Goal.Goal = g
	default:
		return fmt.Errorf("invalid goal %q", in.Goal.Goal)
	}
	switch p := Pace(normalizeEnum(string(in.Goal.Pace))); p {
	case PaceSlow, PaceStandard, PaceAggressive:
		in.Goal.Pace = p
	case "":
		in.Goal.Pace = PaceStandard
	default:
		return fmt.Errorf("invalid pace %q (expected slow, standard, or aggressive)", in.Goal.Pace)
	}
	if in.Goal.PlanDays < 0 {
		return fmt.Errorf("plan days must be >= 0")
	}

	switch a := ActivityLevel(normalizeEnum(string(in.Activity.ActivityLevel))); a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		in.Activity.ActivityLevel = a
	default:
		return fmt.Errorf("invalid activity level %q", in.Activity.ActivityLevel)
	}
	switch s := StressLevel(normalizeEnum(string(in.Activity.StressLevel))); s {
	case StressLow, StressModerate, StressHigh, "":
		in.Activity.StressLevel = s
	default:
		return fmt.Errorf("invalid stress level %q", in.Activity.StressLevel)
	}
	if in.Activity.SleepHours < 0 || in.Activity.SleepHours > 24 {
		return fmt.Errorf("sleep hours must be between 0 and 24")
	}

	switch d := DietType(normalizeEnum(string(in.Diet.DietType))); d {
	case DietTypeNonVegetarian, DietTypeVegetarian, DietTypeVegan:
		in.Diet.DietType = d
	case "":
		in.Diet.DietType = DietTypeNonVegetarian
	default:
		return fmt.Errorf("invalid diet type %q", in.Diet.DietType)
	}
	if in.Diet.MealsPerDay != 0 && (in.Diet.MealsPerDay < 2 || in.Diet.MealsPerDay > 5) {
		return fmt.Errorf("meals per day must be between 2 and 5")
	}
	in.Diet.Allergies = CleanList(in.Diet.Allergies)
	in.Medical.Conditions = CleanList(in.Medical.Conditions)
	return nil
}

// CleanList trims every value and drops empty ones.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func normalizeEnum(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.ReplaceAll(v, "_", "-")
}
