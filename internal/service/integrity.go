package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	InvalidStoreRows   int `json:"invalid_store_rows"`
	InvalidTargetDates int `json:"invalid_target_dates"`
	InvalidEntryDates  int `json:"invalid_entry_dates"`
	FixedStoreRows     int `json:"fixed_store_rows,omitempty"`
}

// BackupName returns the file name used for a backup taken at ts.
func BackupName(ts time.Time) string {
	return "healthyplates-" + ts.UTC().Format("20060102-150405") + ".db"
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	checksumFile := backupPath + ".sha256"
	if expected, err := os.ReadFile(checksumFile); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// datedLogs are the store values holding entries keyed by a YYYY-MM-DD date.
var datedLogs = map[string]bool{
	sleepScope + "/" + entriesKey:     true,
	gratitudeScope + "/" + entriesKey: true,
}

// RunDoctor scans the store for values that no longer decode, log entries
// with a malformed date, and target rows with a malformed effective date.
// With fix, undecodable store values are removed.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	rows, err := db.Query(`SELECT scope, key, value FROM kv_store ORDER BY scope, key`)
	if err != nil {
		return report, fmt.Errorf("doctor store query: %w", err)
	}
	type storeKey struct{ scope, key string }
	invalid := make([]storeKey, 0)
	for rows.Next() {
		var k storeKey
		var value string
		if err := rows.Scan(&k.scope, &k.key, &value); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor store scan: %w", err)
		}
		if !json.Valid([]byte(strings.TrimSpace(value))) {
			report.InvalidStoreRows++
			invalid = append(invalid, k)
			continue
		}
		if datedLogs[k.scope+"/"+k.key] {
			n, err := countBadEntryDates(value)
			if err != nil {
				report.InvalidStoreRows++
				invalid = append(invalid, k)
				continue
			}
			report.InvalidEntryDates += n
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor store iterate: %w", err)
	}
	_ = rows.Close()

	if err := db.QueryRow(`
SELECT COUNT(1) FROM health_targets
WHERE effective_date NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
`).Scan(&report.InvalidTargetDates); err != nil {
		return report, fmt.Errorf("doctor targets check: %w", err)
	}

	if fix && len(invalid) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, k := range invalid {
			if _, err := tx.Exec(`DELETE FROM kv_store WHERE scope = ? AND key = ?`, k.scope, k.key); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix %s/%s: %w", k.scope, k.key, err)
			}
			report.FixedStoreRows++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}

	return report, nil
}

func countBadEntryDates(value string) (int, error) {
	var entries []struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return 0, err
	}
	bad := 0
	for _, e := range entries {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			bad++
		}
	}
	return bad, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
