package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "kv_store",
		sql: `
CREATE TABLE IF NOT EXISTS kv_store (
  scope TEXT NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(scope, key)
);
`,
	},
	{
		version: 3,
		name:    "health_targets",
		sql: `
CREATE TABLE IF NOT EXISTS health_targets (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  bmr INTEGER NOT NULL CHECK(bmr >= 0),
  tdee INTEGER NOT NULL CHECK(tdee >= 0),
  target_calories INTEGER NOT NULL CHECK(target_calories >= 0),
  protein_g INTEGER NOT NULL CHECK(protein_g >= 0),
  carbs_g INTEGER NOT NULL CHECK(carbs_g >= 0),
  fat_g INTEGER NOT NULL CHECK(fat_g >= 0),
  weekly_change_kg REAL NOT NULL DEFAULT 0,
  daily_delta INTEGER NOT NULL DEFAULT 0,
  bmi REAL NOT NULL DEFAULT 0,
  effective_date TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(effective_date)
);
`,
	},
}

var defaultConfig = map[string]string{
	"sleep_goal_hours": "8",
	"default_people":   "1",
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for key, value := range defaultConfig {
		if _, err := db.Exec(`INSERT OR IGNORE INTO app_config(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("seed default config %s: %w", key, err)
		}
	}

	return nil
}

// SchemaVersion reports the highest applied migration.
func SchemaVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}
