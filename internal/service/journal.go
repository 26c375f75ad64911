package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajeshkanna-s/healthyplates/internal/kvstore"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	gratitudeScope    = "gratitude"
	maxGratitudeItems = 3
)

type AddGratitudeInput struct {
	Date  string
	Items []string
	Mood  string
}

func AddGratitudeEntry(db *sql.DB, in AddGratitudeInput) (model.GratitudeEntry, error) {
	date, err := dateOrToday(in.Date)
	if err != nil {
		return model.GratitudeEntry{}, err
	}
	items := model.CleanList(in.Items)
	if len(items) == 0 || len(items) > maxGratitudeItems {
		return model.GratitudeEntry{}, fmt.Errorf("gratitude entry needs 1 to %d items", maxGratitudeItems)
	}

	store, err := kvstore.New(db, gratitudeScope)
	if err != nil {
		return model.GratitudeEntry{}, err
	}
	var entries []model.GratitudeEntry
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return model.GratitudeEntry{}, fmt.Errorf("load gratitude entries: %w", err)
	}
	entry := model.GratitudeEntry{
		ID:        uuid.NewString(),
		Date:      date,
		Items:     items,
		Mood:      normalizeName(in.Mood),
		CreatedAt: time.Now().UTC(),
	}
	entries = append(entries, entry)
	if err := kvstore.SetJSON(store, entriesKey, entries); err != nil {
		return model.GratitudeEntry{}, fmt.Errorf("save gratitude entries: %w", err)
	}
	return entry, nil
}

// ListGratitudeEntries returns entries newest first, optionally limited to
// one date.
func ListGratitudeEntries(db *sql.DB, date string) ([]model.GratitudeEntry, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
		}
	}
	store, err := kvstore.New(db, gratitudeScope)
	if err != nil {
		return nil, err
	}
	var entries []model.GratitudeEntry
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return nil, fmt.Errorf("load gratitude entries: %w", err)
	}
	out := make([]model.GratitudeEntry, 0, len(entries))
	for _, e := range entries {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func DeleteGratitudeEntry(db *sql.DB, id string) error {
	store, err := kvstore.New(db, gratitudeScope)
	if err != nil {
		return err
	}
	var entries []model.GratitudeEntry
	if _, err := kvstore.GetJSON(store, entriesKey, &entries); err != nil {
		return fmt.Errorf("load gratitude entries: %w", err)
	}
	id = strings.TrimSpace(id)
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			if err := kvstore.SetJSON(store, entriesKey, entries); err != nil {
				return fmt.Errorf("save gratitude entries: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("gratitude entry %q: %w", id, ErrNotFound)
}
