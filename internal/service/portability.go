package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const exportVersion = 1

// StoreRecord is one kv_store row as exported.
type StoreRecord struct {
	Scope string `json:"scope"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ExportData struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Config     map[string]string    `json:"config"`
	Store      []StoreRecord        `json:"store"`
	Targets    []model.SavedTargets `json:"targets"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	cfg, err := ListConfig(db)
	if err != nil {
		return nil, err
	}
	out := &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Config:     cfg,
		Store:      make([]StoreRecord, 0),
	}

	rows, err := db.Query(`SELECT scope, key, value FROM kv_store ORDER BY scope, key`)
	if err != nil {
		return nil, fmt.Errorf("export store: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r StoreRecord
		if err := rows.Scan(&r.Scope, &r.Key, &r.Value); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		out.Store = append(out.Store, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}

	if out.Targets, err = TargetsHistory(db); err != nil {
		return nil, err
	}
	return out, nil
}

// ImportDataSnapshot applies a snapshot. Conflicts are rows whose key already
// exists with a different value: fail aborts, skip keeps the local value,
// merge overwrites, and replace clears user data first.
func ImportDataSnapshot(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := normalizeImportMode(opts.Mode)
	if data.Version > exportVersion {
		return report, fmt.Errorf("unsupported export version %d (max %d)", data.Version, exportVersion)
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	for key, value := range data.Config {
		key = normalizeName(key)
		if validate, ok := configValidators[key]; ok {
			v, err := validate(strings.TrimSpace(value))
			if err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("config %s: %v", key, err))
				report.Skipped++
				continue
			}
			value = v
		}
		var existing string
		err := tx.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&existing)
		if err := apply(&report, mode, err, existing == value, "config "+key, func() error {
			if opts.DryRun {
				return nil
			}
			_, err := tx.Exec(`
INSERT INTO app_config(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
			return err
		}); err != nil {
			return report, err
		}
	}

	for _, r := range data.Store {
		scope, key := normalizeName(r.Scope), strings.TrimSpace(r.Key)
		if scope == "" || key == "" {
			report.Warnings = append(report.Warnings, "store record without scope or key")
			report.Skipped++
			continue
		}
		var existing string
		err := tx.QueryRow(`SELECT value FROM kv_store WHERE scope = ? AND key = ?`, scope, key).Scan(&existing)
		if err := apply(&report, mode, err, existing == r.Value, "store "+scope+"/"+key, func() error {
			if opts.DryRun {
				return nil
			}
			_, err := tx.Exec(`
INSERT INTO kv_store(scope, key, value, updated_at) VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(scope, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, scope, key, r.Value)
			return err
		}); err != nil {
			return report, err
		}
	}

	for _, t := range data.Targets {
		if _, err := time.Parse(dateLayout, t.EffectiveDate); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("targets with invalid date %q", t.EffectiveDate))
			report.Skipped++
			continue
		}
		var existing int
		err := tx.QueryRow(`SELECT target_calories FROM health_targets WHERE effective_date = ?`, t.EffectiveDate).Scan(&existing)
		if err := apply(&report, mode, err, existing == t.TargetCalories, "targets "+t.EffectiveDate, func() error {
			if opts.DryRun {
				return nil
			}
			_, err := tx.Exec(`
INSERT INTO health_targets(bmr, tdee, target_calories, protein_g, carbs_g, fat_g, weekly_change_kg, daily_delta, bmi, effective_date)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(effective_date) DO UPDATE SET
  bmr=excluded.bmr, tdee=excluded.tdee, target_calories=excluded.target_calories,
  protein_g=excluded.protein_g, carbs_g=excluded.carbs_g, fat_g=excluded.fat_g,
  weekly_change_kg=excluded.weekly_change_kg, daily_delta=excluded.daily_delta, bmi=excluded.bmi
`, t.BMR, t.TDEE, t.TargetCalories, t.ProteinG, t.CarbsG, t.FatG, t.WeeklyWeightChangeKg, t.DailyCalorieDelta, t.BMI, t.EffectiveDate)
			return err
		}); err != nil {
			return report, err
		}
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

// apply records the outcome for one row given the lookup error of its
// existing value and whether that value is identical.
func apply(report *ImportReport, mode ImportMode, lookupErr error, same bool, what string, write func() error) error {
	switch {
	case lookupErr == sql.ErrNoRows:
		if err := write(); err != nil {
			return fmt.Errorf("import %s: %w", what, err)
		}
		report.Inserted++
		return nil
	case lookupErr != nil:
		return fmt.Errorf("check existing %s: %w", what, lookupErr)
	case same:
		report.Skipped++
		return nil
	}

	report.Conflicts++
	switch mode {
	case ImportModeFail:
		return fmt.Errorf("import conflict on %s (use --mode skip|merge|replace)", what)
	case ImportModeSkip:
		report.Skipped++
		return nil
	}
	if err := write(); err != nil {
		return fmt.Errorf("import %s: %w", what, err)
	}
	report.Updated++
	return nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

func clearUserData(tx *sql.Tx) error {
	for _, s := range []string{
		`DELETE FROM kv_store`,
		`DELETE FROM health_targets`,
	} {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear data for replace mode: %w", err)
		}
	}
	return nil
}
