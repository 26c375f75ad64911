package healthyplates

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rajeshkanna-s/healthyplates/internal/app"
	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/db"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.OpenMigrated(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func loadCatalog() (*catalog.Catalog, error) {
	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	return catalog.Load(dir)
}

func withCatalog(run func(*catalog.Catalog) error) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	return run(cat)
}

func printJSON(w io.Writer, what string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s json: %w", what, err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// splitList parses a comma-separated flag value.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
