package healthplan

import (
	"math"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	// MinTargetCalories is the floor applied to every daily target.
	MinTargetCalories = 1200
	kcalPerKgFat      = 7700
	diabetesCarbCapG  = 50*3 + 30
	defaultMultiplier = 1.2
)

// activityMultipliers maps activity levels to their TDEE multiplier.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

var lossPercent = map[model.Pace]float64{
	model.PaceSlow:       0.10,
	model.PaceStandard:   0.15,
	model.PaceAggressive: 0.20,
}

var gainSurplus = map[model.Pace]int{
	model.PaceSlow:       250,
	model.PaceStandard:   350,
	model.PaceAggressive: 500,
}

// CalculateTargets derives energy expenditure, the daily calorie target and
// macro split from an intake. It is total: unknown enum values fall back to
// sedentary activity, standard pace and maintenance.
func CalculateTargets(in model.UserIntake) model.CalculatedTargets {
	bmr := BMR(in.Profile)
	tdee := int(math.Round(float64(bmr) * ActivityMultiplier(in.Activity.ActivityLevel)))
	target, delta, weekly := GoalCalories(tdee, in.Goal.Goal, in.Goal.Pace)

	diabetic := in.Medical.Has(model.ConditionDiabetes)
	protein, carbs, fat := Macros(target, in.Profile.WeightKg, in.Goal.Goal, diabetic)
	bmi := BMI(in.Profile.HeightCm, in.Profile.WeightKg)

	return model.CalculatedTargets{
		BMR:                  bmr,
		TDEE:                 tdee,
		TargetCalories:       target,
		ProteinG:             protein,
		CarbsG:               carbs,
		FatG:                 fat,
		WeeklyWeightChangeKg: weekly,
		DailyCalorieDelta:    delta,
		BMI:                  bmi,
		BMICategory:          BMICategory(bmi),
	}
}

// BMR is the Mifflin-St Jeor basal rate, rounded once at the end. Only male
// uses the +5 constant; every other value uses -161.
func BMR(p model.ProfileMetrics) int {
	v := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == model.SexMale {
		v += 5
	} else {
		v -= 161
	}
	return int(math.Round(v))
}

func ActivityMultiplier(level model.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultMultiplier
}

// GoalCalories applies the goal policy to a TDEE. delta is the signed daily
// adjustment and weekly the projected change in kg, rounded to two decimals.
// The 1200 kcal floor only lifts the target; delta and weekly keep the
// unfloored policy values.
func GoalCalories(tdee int, goal model.Goal, pace model.Pace) (target, delta int, weekly float64) {
	if _, ok := lossPercent[pace]; !ok {
		pace = model.PaceStandard
	}
	projected := true
	switch goal {
	case model.GoalWeightLoss:
		delta = -int(math.Round(float64(tdee) * lossPercent[pace]))
	case model.GoalWeightGain:
		delta = gainSurplus[pace]
	case model.GoalRecomp:
		delta = -int(math.Round(float64(tdee) * 0.05))
		projected = false
	}
	target = tdee + delta
	if target < MinTargetCalories {
		target = MinTargetCalories
	}
	if projected {
		weekly = math.Round(float64(delta)*7/kcalPerKgFat*100) / 100
	}
	return target, delta, weekly
}

// Macros splits a calorie target into grams. Carbs take the remainder after
// protein and fat, never go negative, and are capped for diabetes.
func Macros(target int, weightKg float64, goal model.Goal, diabetic bool) (protein, carbs, fat int) {
	perKg := 1.4
	switch goal {
	case model.GoalWeightLoss, model.GoalWeightGain, model.GoalRecomp:
		perKg = 1.6
	}
	fatShare := 0.25
	if diabetic {
		fatShare = 0.30
	}
	protein = int(math.Round(weightKg * perKg))
	fat = int(math.Round(float64(target) * fatShare / 9))
	carbs = int(math.Round(float64(target-4*protein-9*fat) / 4))
	if carbs < 0 {
		carbs = 0
	}
	if diabetic && carbs > diabetesCarbCapG {
		carbs = diabetesCarbCapG
	}
	return protein, carbs, fat
}

// BMI expects height in centimeters and weight in kilograms and rounds to
// one decimal. Non-positive inputs yield 0.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	h := heightCm / 100
	return math.Round(weightKg/(h*h)*10) / 10
}

func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
