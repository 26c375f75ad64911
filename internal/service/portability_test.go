package service_test

import (
	"strings"
	"testing"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

func seedSnapshot(t *testing.T) *service.ExportData {
	t.Helper()
	src := newTestDB(t)
	if err := service.SetConfig(src, service.ConfigDefaultCuisine, "north"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	if _, err := service.AddSleepEntry(src, service.AddSleepInput{Date: "2026-05-01", Bedtime: "23:00", WakeTime: "07:00", Quality: 4}); err != nil {
		t.Fatalf("add sleep: %v", err)
	}
	if err := service.SaveTargets(src, model.CalculatedTargets{BMR: 1400, TDEE: 1900, TargetCalories: 1600}, "2026-05-01"); err != nil {
		t.Fatalf("save targets: %v", err)
	}
	data, err := service.ExportDataSnapshot(src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	return data
}

func TestExportImportRoundTripIntoEmptyDB(t *testing.T) {
	t.Parallel()
	data := seedSnapshot(t)
	if data.Version != 1 || len(data.Store) != 1 || len(data.Targets) != 1 {
		t.Fatalf("unexpected snapshot: %+v", data)
	}

	dst := newTestDB(t)
	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeMerge})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Conflicts != 0 || report.Inserted == 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	entries, err := service.ListSleepEntries(dst, 0)
	if err != nil || len(entries) != 1 || entries[0].Date != "2026-05-01" {
		t.Fatalf("expected imported sleep entry, got %+v err=%v", entries, err)
	}
	v, _, _ := service.GetConfig(dst, service.ConfigDefaultCuisine)
	if v != "north" {
		t.Fatalf("expected imported cuisine, got %q", v)
	}
}

func TestImportConflictModes(t *testing.T) {
	t.Parallel()
	data := seedSnapshot(t)

	dst := newTestDB(t)
	if err := service.SetConfig(dst, service.ConfigDefaultCuisine, "south"); err != nil {
		t.Fatalf("set local config: %v", err)
	}

	_, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeFail})
	if err == nil || !strings.Contains(err.Error(), "import conflict on config default_cuisine") {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if entries, _ := service.ListSleepEntries(dst, 0); len(entries) != 0 {
		t.Fatalf("failed import must not write, got %d entries", len(entries))
	}

	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("skip import: %v", err)
	}
	if report.Conflicts != 1 {
		t.Fatalf("expected one conflict, got %+v", report)
	}
	v, _, _ := service.GetConfig(dst, service.ConfigDefaultCuisine)
	if v != "south" {
		t.Fatalf("skip mode must keep local value, got %q", v)
	}

	if _, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeMerge}); err != nil {
		t.Fatalf("merge import: %v", err)
	}
	v, _, _ = service.GetConfig(dst, service.ConfigDefaultCuisine)
	if v != "north" {
		t.Fatalf("merge mode must overwrite, got %q", v)
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	t.Parallel()
	data := seedSnapshot(t)
	dst := newTestDB(t)
	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if report.Inserted == 0 {
		t.Fatalf("expected dry run to count inserts, got %+v", report)
	}
	history, err := service.TargetsHistory(dst)
	if err != nil || len(history) != 0 {
		t.Fatalf("dry run must not write targets, got %+v err=%v", history, err)
	}
}
