package tests

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestDayInTheLifeFlow(t *testing.T) {
	binPath := buildBinary(t)
	dbPath := filepath.Join(t.TempDir(), "healthyplates.db")
	initDB(t, binPath, dbPath)

	mustRun := func(args ...string) string {
		t.Helper()
		stdout, stderr, exit := runCLI(t, binPath, dbPath, args...)
		if exit != 0 {
			t.Fatalf("%v failed: exit=%d stderr=%s", args, exit, stderr)
		}
		return stdout
	}

	mustRun("config", "set", "--people", "3", "--cuisine", "mixed", "--diet", "veg", "--sleep-goal", "7.5")
	cfgOut := mustRun("config", "get")
	if !strings.Contains(cfgOut, "default_cuisine\tmixed") {
		t.Fatalf("expected saved cuisine, got: %s", cfgOut)
	}

	var list struct {
		Items []struct {
			Name       string `json:"name"`
			IsExcluded bool   `json:"is_excluded"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(mustRun("grocery", "generate", "--avoid", "brinjal", "--json")), &list); err != nil {
		t.Fatalf("decode grocery json: %v", err)
	}
	if len(list.Items) == 0 {
		t.Fatalf("expected grocery items")
	}
	for _, it := range list.Items {
		if strings.Contains(strings.ToLower(it.Name), "brinjal") && !it.IsExcluded {
			t.Fatalf("expected brinjal to be excluded: %+v", it)
		}
	}

	planOut := mustRun("plan", "generate",
		"--age", "34", "--sex", "female", "--height", "162", "--weight", "68",
		"--goal", "weight-loss", "--activity", "light", "--days", "3", "--meals", "4",
		"--sleep", "6", "--conditions", "diabetes")
	for _, want := range []string{"Day 3:", "Shopping list, week 1:", "Condition notes:"} {
		if !strings.Contains(planOut, want) {
			t.Fatalf("expected %q in plan output:\n%s", want, planOut)
		}
	}

	mustRun("targets", "save",
		"--age", "34", "--sex", "female", "--height", "162", "--weight", "68",
		"--goal", "weight-loss", "--activity", "light", "--effective-date", "2026-02-01")
	current := mustRun("targets", "current", "--date", "2026-02-15")
	if !strings.Contains(current, "Effective: 2026-02-01") {
		t.Fatalf("expected saved targets, got: %s", current)
	}

	mustRun("sleep", "add", "--date", "2026-02-14", "--bed", "22:30", "--wake", "06:30", "--quality", "4")
	mustRun("sleep", "add", "--date", "2026-02-15", "--bed", "23:00", "--wake", "07:00", "--quality", "5")
	stats := mustRun("sleep", "stats")
	if !strings.Contains(stats, "Streak: 2 current, 2 longest") {
		t.Fatalf("unexpected sleep stats: %s", stats)
	}

	mustRun("journal", "add", "sunrise", "family dinner", "--mood", "happy", "--date", "2026-02-15")
	journal := mustRun("journal", "list", "--date", "2026-02-15")
	if !strings.Contains(journal, "sunrise; family dinner") {
		t.Fatalf("unexpected journal list: %s", journal)
	}

	mustRun("practice", "save", "box breathing")
	saved := mustRun("practice", "saved")
	if !strings.Contains(saved, "Box Breathing") {
		t.Fatalf("expected saved practice, got: %s", saved)
	}

	keys := mustRun("store", "ls", "sleep")
	if !strings.Contains(keys, "entries") {
		t.Fatalf("expected sleep entries key, got: %s", keys)
	}

	mustRun("doctor")
	mustRun("backup", "create")
	backups := mustRun("backup", "list")
	if !strings.Contains(backups, "healthyplates-") {
		t.Fatalf("expected a backup file, got: %s", backups)
	}

	if greet := mustRun("greet", "Meena", "--occasion", "festival"); !strings.Contains(greet, "Meena") {
		t.Fatalf("unexpected greeting: %s", greet)
	}
}

func TestExportImportFlow(t *testing.T) {
	binPath := buildBinary(t)
	dir := t.TempDir()
	srcDB := filepath.Join(dir, "src.db")
	initDB(t, binPath, srcDB)

	for _, args := range [][]string{
		{"sleep", "add", "--date", "2026-03-01", "--bed", "23:00", "--wake", "07:00", "--quality", "4"},
		{"journal", "add", "quiet morning", "--date", "2026-03-01"},
		{"export", "--out", filepath.Join(dir, "snapshot.json")},
		{"export", "--format", "csv", "--out", filepath.Join(dir, "sleep.csv")},
	} {
		if _, stderr, exit := runCLI(t, binPath, srcDB, args...); exit != 0 {
			t.Fatalf("%v failed: exit=%d stderr=%s", args, exit, stderr)
		}
	}

	dstDB := filepath.Join(dir, "dst.db")
	initDB(t, binPath, dstDB)
	stdout, stderr, exit := runCLI(t, binPath, dstDB, "import", "--in", filepath.Join(dir, "snapshot.json"))
	if exit != 0 {
		t.Fatalf("import json failed: exit=%d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, "conflicts=0") {
		t.Fatalf("unexpected import report: %s", stdout)
	}
	journal, _, _ := runCLI(t, binPath, dstDB, "journal", "list")
	if !strings.Contains(journal, "quiet morning") {
		t.Fatalf("expected imported journal entry, got: %s", journal)
	}

	csvDB := filepath.Join(dir, "csv.db")
	initDB(t, binPath, csvDB)
	if _, stderr, exit := runCLI(t, binPath, csvDB, "import", "--format", "csv", "--in", filepath.Join(dir, "sleep.csv")); exit != 0 {
		t.Fatalf("import csv failed: exit=%d stderr=%s", exit, stderr)
	}
	list, _, _ := runCLI(t, binPath, csvDB, "sleep", "list")
	if !strings.Contains(list, "2026-03-01\t23:00\t07:00\t8.00\t4") {
		t.Fatalf("expected imported sleep entry, got: %s", list)
	}
}
