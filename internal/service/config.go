package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	ConfigSleepGoalHours = "sleep_goal_hours"
	ConfigDefaultPeople  = "default_people"
	ConfigDefaultCuisine = "default_cuisine"
	ConfigDefaultDiet    = "default_diet"

	defaultSleepGoalHours = 8.0
)

// configValidators guard the keys the app reads back. Unknown keys are
// stored as given.
var configValidators = map[string]func(string) (string, error){
	ConfigSleepGoalHours: func(v string) (string, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 24 {
			return "", fmt.Errorf("%s must be a number of hours between 0 and 24", ConfigSleepGoalHours)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	},
	ConfigDefaultPeople: func(v string) (string, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return "", fmt.Errorf("%s must be a whole number >= 1", ConfigDefaultPeople)
		}
		return strconv.Itoa(n), nil
	},
	ConfigDefaultCuisine: func(v string) (string, error) {
		c, err := model.ParseCuisine(v)
		return string(c), err
	},
	ConfigDefaultDiet: func(v string) (string, error) {
		d, err := model.ParseDiet(v)
		return string(d), err
	},
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	value = strings.TrimSpace(value)
	if validate, ok := configValidators[key]; ok {
		v, err := validate(value)
		if err != nil {
			return err
		}
		value = v
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// SleepGoalHours reads the configured nightly goal, falling back to 8.
func SleepGoalHours(db *sql.DB) (float64, error) {
	v, ok, err := GetConfig(db, ConfigSleepGoalHours)
	if err != nil || !ok {
		return defaultSleepGoalHours, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return defaultSleepGoalHours, nil
	}
	return f, nil
}

// GroceryDefaults fills unset preference fields from app config.
func GroceryDefaults(db *sql.DB, prefs *model.UserPreferences) error {
	cfg, err := ListConfig(db)
	if err != nil {
		return err
	}
	if prefs.PeopleCount == 0 {
		if n, err := strconv.Atoi(cfg[ConfigDefaultPeople]); err == nil && n > 0 {
			prefs.PeopleCount = n
		}
	}
	if prefs.Cuisine == "" {
		prefs.Cuisine = model.Cuisine(cfg[ConfigDefaultCuisine])
	}
	if prefs.Diet == "" {
		prefs.Diet = model.Diet(cfg[ConfigDefaultDiet])
	}
	return nil
}
