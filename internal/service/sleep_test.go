package service_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/rajeshkanna-s/healthyplates/internal/kvstore"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

func TestSleepDurationWrapsMidnight(t *testing.T) {
	t.Parallel()
	cases := []struct {
		bed, wake string
		want      float64
	}{
		{"22:30", "06:30", 8},
		{"23:45", "07:00", 7.25},
		{"01:00", "08:20", 7.33},
		{"13:00", "14:30", 1.5},
	}
	for _, tc := range cases {
		got, err := service.SleepDuration(tc.bed, tc.wake)
		if err != nil {
			t.Fatalf("duration %s-%s: %v", tc.bed, tc.wake, err)
		}
		if got != tc.want {
			t.Fatalf("duration %s-%s: expected %.2f, got %.2f", tc.bed, tc.wake, tc.want, got)
		}
	}
}

func TestSleepDurationRejectsBadInput(t *testing.T) {
	t.Parallel()
	for _, pair := range [][2]string{{"25:00", "07:00"}, {"22:00", "7am"}, {"22:00", "22:00"}} {
		if _, err := service.SleepDuration(pair[0], pair[1]); err == nil {
			t.Fatalf("expected error for %v", pair)
		}
	}
}

func TestAddSleepEntryReplacesSameDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	if _, err := service.AddSleepEntry(db, service.AddSleepInput{Date: "2026-03-01", Bedtime: "23:00", WakeTime: "06:00", Quality: 3}); err != nil {
		t.Fatalf("add first entry: %v", err)
	}
	second, err := service.AddSleepEntry(db, service.AddSleepInput{Date: "2026-03-01", Bedtime: "22:00", WakeTime: "06:30", Quality: 4, Notes: " rested "})
	if err != nil {
		t.Fatalf("add replacement entry: %v", err)
	}

	items, err := service.ListSleepEntries(db, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one entry for the date, got %d", len(items))
	}
	if items[0].ID != second.ID || items[0].DurationHours != 8.5 || items[0].Notes != "rested" {
		t.Fatalf("unexpected stored entry: %+v", items[0])
	}
}

func TestAddSleepEntryValidatesQuality(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	for _, q := range []int{0, 6} {
		if _, err := service.AddSleepEntry(db, service.AddSleepInput{Date: "2026-03-01", Bedtime: "23:00", WakeTime: "07:00", Quality: q}); err == nil {
			t.Fatalf("expected quality %d to be rejected", q)
		}
	}
}

func TestListSleepEntriesNewestFirstWithLimit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	for _, d := range []string{"2026-03-02", "2026-03-04", "2026-03-01", "2026-03-03"} {
		if _, err := service.AddSleepEntry(db, service.AddSleepInput{Date: d, Bedtime: "23:00", WakeTime: "07:00", Quality: 3}); err != nil {
			t.Fatalf("add %s: %v", d, err)
		}
	}
	items, err := service.ListSleepEntries(db, 2)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(items) != 2 || items[0].Date != "2026-03-04" || items[1].Date != "2026-03-03" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestDeleteSleepEntry(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	entry, err := service.AddSleepEntry(db, service.AddSleepInput{Date: "2026-03-01", Bedtime: "23:00", WakeTime: "07:00", Quality: 3})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := service.DeleteSleepEntry(db, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := service.DeleteSleepEntry(db, entry.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSleepStatsStreaks(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	if err := service.SetConfig(db, service.ConfigSleepGoalHours, "7.5"); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	// 03-04 is missing, which breaks the run.
	nights := []struct {
		date, bed, wake string
		quality         int
	}{
		{"2026-03-01", "22:30", "06:30", 4}, // 8h
		{"2026-03-02", "22:00", "06:00", 5}, // 8h
		{"2026-03-03", "23:00", "07:00", 4}, // 8h
		{"2026-03-05", "00:30", "06:30", 2}, // 6h
		{"2026-03-06", "22:00", "06:00", 4}, // 8h
		{"2026-03-07", "23:00", "07:00", 3}, // 8h
	}
	for _, n := range nights {
		if _, err := service.AddSleepEntry(db, service.AddSleepInput{Date: n.date, Bedtime: n.bed, WakeTime: n.wake, Quality: n.quality}); err != nil {
			t.Fatalf("add %s: %v", n.date, err)
		}
	}

	stats, err := service.GetSleepStats(db)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 6 || stats.GoalHours != 7.5 || stats.GoalMetDays != 5 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 3 {
		t.Fatalf("expected current 2 longest 3, got %+v", stats)
	}
	if stats.AvgDurationHours != 7.67 || stats.AvgQuality != 3.67 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
}

func TestSleepStatsEmpty(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	stats, err := service.GetSleepStats(db)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 0 || stats.GoalHours != 8 || stats.CurrentStreak != 0 {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}
}

// writeSleepLog stores entries as-is, bypassing validation, the way an
// imported snapshot or `store set` can.
func writeSleepLog(t *testing.T, db *sql.DB, entries []model.SleepEntry) {
	t.Helper()
	store, err := kvstore.New(db, "sleep")
	if err != nil {
		t.Fatalf("open sleep scope: %v", err)
	}
	if err := kvstore.SetJSON(store, "entries", entries); err != nil {
		t.Fatalf("write sleep log: %v", err)
	}
}

func TestSleepStatsSkipsMalformedDates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	writeSleepLog(t, db, []model.SleepEntry{
		{ID: "a", Date: "2026-10-01", Bedtime: "22:00", WakeTime: "06:00", DurationHours: 8, Quality: 4},
		{ID: "b", Date: "2026-10-02", Bedtime: "22:00", WakeTime: "06:00", DurationHours: 8, Quality: 4},
		{ID: "c", Date: "2026-10-03", Bedtime: "22:00", WakeTime: "06:00", DurationHours: 8, Quality: 4},
		{ID: "d", Date: "2026/10/04", Bedtime: "22:00", WakeTime: "06:00", DurationHours: 8, Quality: 4},
	})

	stats, err := service.GetSleepStats(db)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 3 || stats.SkippedEntries != 1 || stats.GoalMetDays != 3 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.CurrentStreak != 3 || stats.LongestStreak != 3 {
		t.Fatalf("expected streaks of 3, got %+v", stats)
	}
}

func TestSleepStatsOnlyMalformedDates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	writeSleepLog(t, db, []model.SleepEntry{
		{ID: "a", Date: "0001-01-01x", DurationHours: 8, Quality: 3},
	})
	stats, err := service.GetSleepStats(db)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Entries != 0 || stats.SkippedEntries != 1 || stats.LongestStreak != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestImportSleepEntriesWritesNothingOnBadRow(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	rows := []service.AddSleepInput{
		{Date: "2026-10-01", Bedtime: "22:00", WakeTime: "06:00", Quality: 4},
		{Date: "2026-10-02", Bedtime: "22:00", WakeTime: "06:00", Quality: 9},
	}
	for _, dryRun := range []bool{true, false} {
		if _, err := service.ImportSleepEntries(db, rows, dryRun); err == nil {
			t.Fatalf("expected quality error (dry run %v)", dryRun)
		}
	}
	bad := []service.AddSleepInput{
		{Date: "2026-10-01", Bedtime: "22:00", WakeTime: "06:00", Quality: 4},
		{Date: "2026/10/02", Bedtime: "22:00", WakeTime: "06:00", Quality: 4},
	}
	if _, err := service.ImportSleepEntries(db, bad, true); err == nil {
		t.Fatalf("expected date error on dry run")
	}

	entries, err := service.ListSleepEntries(db, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after failed import, got %+v", entries)
	}
}

func TestImportSleepEntriesMergesByDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	if _, err := service.AddSleepEntry(db, service.AddSleepInput{Date: "2026-10-01", Bedtime: "23:00", WakeTime: "05:00", Quality: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	rows := []service.AddSleepInput{
		{Date: "2026-10-01", Bedtime: "22:00", WakeTime: "06:00", Quality: 4},
		{Date: "2026-10-02", Bedtime: "22:00", WakeTime: "05:00", Quality: 3},
		{Date: "2026-10-02", Bedtime: "22:00", WakeTime: "07:00", Quality: 5},
	}
	n, err := service.ImportSleepEntries(db, rows, true)
	if err != nil || n != 3 {
		t.Fatalf("dry run: n=%d err=%v", n, err)
	}
	if entries, _ := service.ListSleepEntries(db, 0); len(entries) != 1 {
		t.Fatalf("dry run wrote entries: %+v", entries)
	}

	if _, err := service.ImportSleepEntries(db, rows, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	entries, err := service.ListSleepEntries(db, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].Date != "2026-10-02" || entries[0].Quality != 5 || entries[0].DurationHours != 9 {
		t.Fatalf("expected last row to win for 2026-10-02, got %+v", entries[0])
	}
	if entries[1].Quality != 4 || entries[1].DurationHours != 8 {
		t.Fatalf("expected import to replace 2026-10-01, got %+v", entries[1])
	}
}
