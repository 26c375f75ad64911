package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rajeshkanna-s/healthyplates/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.OpenMigrated(filepath.Join(t.TempDir(), "healthyplates.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}
