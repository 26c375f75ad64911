package service

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajeshkanna-s/healthyplates/internal/kvstore"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	sleepScope   = "sleep"
	entriesKey   = "entries"
	clockLayout  = "15:04"
	minQuality   = 1
	maxQuality   = 5
	minutesInDay = 24 * 60
)

type AddSleepInput struct {
	Date     string
	Bedtime  string
	WakeTime string
	Quality  int
	Notes    string
}

type SleepStats struct {
	Entries          int     `json:"entries"`
	AvgDurationHours float64 `json:"avg_duration_hours"`
	AvgQuality       float64 `json:"avg_quality"`
	GoalHours        float64 `json:"goal_hours"`
	GoalMetDays      int     `json:"goal_met_days"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	SkippedEntries   int     `json:"skipped_entries,omitempty"`
}

// AddSleepEntry records one night. Date is the wake-up day; a second entry
// for the same date replaces the first.
func AddSleepEntry(db *sql.DB, in AddSleepInput) (model.SleepEntry, error) {
	entry, err := newSleepEntry(in)
	if err != nil {
		return model.SleepEntry{}, err
	}
	if err := mergeSleepEntries(db, []model.SleepEntry{entry}); err != nil {
		return model.SleepEntry{}, err
	}
	return entry, nil
}

// ImportSleepEntries validates every row before writing any of them, then
// stores the batch in one write. Later rows win over earlier rows and over
// stored entries with the same date. With dryRun nothing is written.
func ImportSleepEntries(db *sql.DB, rows []AddSleepInput, dryRun bool) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("no sleep entries to import")
	}
	batch := make([]model.SleepEntry, 0, len(rows))
	for i, in := range rows {
		e, err := newSleepEntry(in)
		if err != nil {
			return 0, fmt.Errorf("sleep entry %d: %w", i+1, err)
		}
		batch = append(batch, e)
	}
	if dryRun {
		return len(batch), nil
	}
	if err := mergeSleepEntries(db, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func newSleepEntry(in AddSleepInput) (model.SleepEntry, error) {
	date, err := dateOrToday(in.Date)
	if err != nil {
		return model.SleepEntry{}, err
	}
	hours, err := SleepDuration(in.Bedtime, in.WakeTime)
	if err != nil {
		return model.SleepEntry{}, err
	}
	if in.Quality < minQuality || in.Quality > maxQuality {
		return model.SleepEntry{}, fmt.Errorf("quality must be between %d and %d", minQuality, maxQuality)
	}
	return model.SleepEntry{
		ID:            uuid.NewString(),
		Date:          date,
		Bedtime:       strings.TrimSpace(in.Bedtime),
		WakeTime:      strings.TrimSpace(in.WakeTime),
		DurationHours: hours,
		Quality:       in.Quality,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// mergeSleepEntries replaces stored entries sharing a date with the new ones
// and rewrites the whole log.
func mergeSleepEntries(db *sql.DB, added []model.SleepEntry) error {
	store, err := kvstore.New(db, sleepScope)
	if err != nil {
		return err
	}
	var entries []model.SleepEntry
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return fmt.Errorf("load sleep entries: %w", err)
	}
	byDate := make(map[string]model.SleepEntry, len(added))
	for _, e := range added {
		byDate[e.Date] = e
	}
	kept := make([]model.SleepEntry, 0, len(entries)+len(byDate))
	for _, e := range entries {
		if _, ok := byDate[e.Date]; !ok {
			kept = append(kept, e)
		}
	}
	for _, e := range added {
		if byDate[e.Date].ID == e.ID {
			kept = append(kept, e)
		}
	}
	sortSleepEntries(kept)

	if err := kvstore.SetJSON(store, entriesKey, kept); err != nil {
		return fmt.Errorf("save sleep entries: %w", err)
	}
	return nil
}

// ListSleepEntries returns entries newest first. limit <= 0 returns all.
func ListSleepEntries(db *sql.DB, limit int) ([]model.SleepEntry, error) {
	entries, err := loadSleepEntries(db)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func DeleteSleepEntry(db *sql.DB, id string) error {
	store, err := kvstore.New(db, sleepScope)
	if err != nil {
		return err
	}
	var entries []model.SleepEntry
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return fmt.Errorf("load sleep entries: %w", err)
	}
	id = strings.TrimSpace(id)
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			if err := kvstore.SetJSON(store, entriesKey, entries); err != nil {
				return fmt.Errorf("save sleep entries: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("sleep entry %q: %w", id, ErrNotFound)
}

// GetSleepStats summarizes every entry against the configured goal. Streaks
// count consecutive calendar days meeting the goal, so a missing night
// breaks a streak. The current streak ends at the latest entry. Entries with
// a malformed date are left out and counted in SkippedEntries.
func GetSleepStats(db *sql.DB) (SleepStats, error) {
	goal, err := SleepGoalHours(db)
	if err != nil {
		return SleepStats{}, err
	}
	entries, err := loadSleepEntries(db)
	if err != nil {
		return SleepStats{}, err
	}
	stats := SleepStats{GoalHours: goal}

	valid := make([]model.SleepEntry, 0, len(entries))
	for _, e := range entries {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			stats.SkippedEntries++
			continue
		}
		valid = append(valid, e)
	}
	stats.Entries = len(valid)
	if len(valid) == 0 {
		return stats, nil
	}

	var totalHours float64
	var totalQuality int
	met := make(map[string]bool, len(valid))
	for _, e := range valid {
		totalHours += e.DurationHours
		totalQuality += e.Quality
		if e.DurationHours >= goal {
			stats.GoalMetDays++
			met[e.Date] = true
		}
	}
	stats.AvgDurationHours = round2(totalHours / float64(len(valid)))
	stats.AvgQuality = round2(float64(totalQuality) / float64(len(valid)))

	// valid is newest first and every date parses.
	first, _ := time.Parse(dateLayout, valid[len(valid)-1].Date)
	last, _ := time.Parse(dateLayout, valid[0].Date)
	days := make([]string, 0)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	stats.CurrentStreak, stats.LongestStreak = computeBooleanStreak(days, func(day string) bool {
		return met[day]
	})
	return stats, nil
}

// SleepDuration returns the hours between two HH:MM clock times, wrapping
// past midnight when the wake time is earlier than the bedtime.
func SleepDuration(bedtime, wake string) (float64, error) {
	bed, err := time.Parse(clockLayout, strings.TrimSpace(bedtime))
	if err != nil {
		return 0, fmt.Errorf("invalid bedtime %q (expected HH:MM)", bedtime)
	}
	up, err := time.Parse(clockLayout, strings.TrimSpace(wake))
	if err != nil {
		return 0, fmt.Errorf("invalid wake time %q (expected HH:MM)", wake)
	}
	minutes := int(up.Sub(bed).Minutes())
	if minutes == 0 {
		return 0, fmt.Errorf("bedtime and wake time must differ")
	}
	if minutes < 0 {
		minutes += minutesInDay
	}
	return round2(float64(minutes) / 60), nil
}

func loadSleepEntries(db *sql.DB) ([]model.SleepEntry, error) {
	store, err := kvstore.New(db, sleepScope)
	if err != nil {
		return nil, err
	}
	entries := make([]model.SleepEntry, 0)
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return nil, fmt.Errorf("load sleep entries: %w", err)
	}
	sortSleepEntries(entries)
	return entries, nil
}

func sortSleepEntries(entries []model.SleepEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
