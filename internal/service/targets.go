package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

// SaveTargets pins a calculated target set to an effective date. Saving
// again for the same date overwrites it.
func SaveTargets(db *sql.DB, t model.CalculatedTargets, effectiveDate string) error {
	for name, v := range map[string]int{
		"bmr":             t.BMR,
		"tdee":            t.TDEE,
		"target calories": t.TargetCalories,
		"protein":         t.ProteinG,
		"carbs":           t.CarbsG,
		"fat":             t.FatG,
	} {
		if err := validateNonNegativeInt(name, v); err != nil {
			return err
		}
	}
	if err := validateNonNegativeFloat("bmi", t.BMI); err != nil {
		return err
	}
	date, err := dateOrToday(effectiveDate)
	if err != nil {
		return fmt.Errorf("invalid effective date %q (expected YYYY-MM-DD)", strings.TrimSpace(effectiveDate))
	}

	_, err = db.Exec(`
INSERT INTO health_targets(bmr, tdee, target_calories, protein_g, carbs_g, fat_g, weekly_change_kg, daily_delta, bmi, effective_date)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  bmr=excluded.bmr,
  tdee=excluded.tdee,
  target_calories=excluded.target_calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  weekly_change_kg=excluded.weekly_change_kg,
  daily_delta=excluded.daily_delta,
  bmi=excluded.bmi
`, t.BMR, t.TDEE, t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG, t.WeeklyWeightChangeKg, t.DailyCalorieDelta, t.BMI, date)
	if err != nil {
		return fmt.Errorf("save targets: %w", err)
	}
	return nil
}

const targetColumns = `id, bmr, tdee, target_calories, protein_g, carbs_g, fat_g, weekly_change_kg, daily_delta, bmi, effective_date, created_at`

// CurrentTargets returns the targets in effect on date, or nil when none
// were saved on or before it.
func CurrentTargets(db *sql.DB, date string) (*model.SavedTargets, error) {
	date, err := dateOrToday(date)
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(`
SELECT `+targetColumns+`
FROM health_targets
WHERE effective_date <= ?
ORDER BY effective_date DESC
LIMIT 1
`, date)
	t, err := scanTargets(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("current targets for %s: %w", date, err)
	}
	return &t, nil
}

func TargetsHistory(db *sql.DB) ([]model.SavedTargets, error) {
	rows, err := db.Query(`
SELECT ` + targetColumns + `
FROM health_targets
ORDER BY effective_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list targets history: %w", err)
	}
	defer rows.Close()

	out := make([]model.SavedTargets, 0)
	for rows.Next() {
		t, err := scanTargets(rows)
		if err != nil {
			return nil, fmt.Errorf("scan targets history: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate targets history: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTargets(r rowScanner) (model.SavedTargets, error) {
	var t model.SavedTargets
	err := r.Scan(&t.ID, &t.BMR, &t.TDEE, &t.TargetCalories, &t.ProteinG, &t.CarbsG, &t.FatG,
		&t.WeeklyWeightChangeKg, &t.DailyCalorieDelta, &t.BMI, &t.EffectiveDate, &t.CreatedAt)
	return t, err
}
