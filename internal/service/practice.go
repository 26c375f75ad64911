package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rajeshkanna-s/healthyplates/internal/kvstore"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const (
	practicesScope = "practices"
	savedKey       = "saved"
)

// SavePractice bookmarks a practice from the catalog. Saving twice keeps the
// original timestamp.
func SavePractice(db *sql.DB, practices []model.Practice, name string) (model.SavedPractice, error) {
	p, ok := findPractice(practices, name)
	if !ok {
		return model.SavedPractice{}, fmt.Errorf("practice %q: %w", strings.TrimSpace(name), ErrNotFound)
	}
	store, saved, err := loadSaved(db)
	if err != nil {
		return model.SavedPractice{}, err
	}
	for _, s := range saved {
		if s.Name == p.Name {
			return s, nil
		}
	}
	entry := model.SavedPractice{Name: p.Name, SavedAt: time.Now().UTC()}
	saved = append(saved, entry)
	if err := kvstore.SetJSON(store, savedKey, saved); err != nil {
		return model.SavedPractice{}, fmt.Errorf("save practices: %w", err)
	}
	return entry, nil
}

func UnsavePractice(db *sql.DB, name string) error {
	store, saved, err := loadSaved(db)
	if err != nil {
		return err
	}
	target := normalizeName(name)
	for i, s := range saved {
		if normalizeName(s.Name) == target {
			saved = append(saved[:i], saved[i+1:]...)
			if err := kvstore.SetJSON(store, savedKey, saved); err != nil {
				return fmt.Errorf("save practices: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("saved practice %q: %w", strings.TrimSpace(name), ErrNotFound)
}

// ListSavedPractices returns bookmarks in the order they were saved.
func ListSavedPractices(db *sql.DB) ([]model.SavedPractice, error) {
	_, saved, err := loadSaved(db)
	return saved, err
}

func loadSaved(db *sql.DB) (*kvstore.Store, []model.SavedPractice, error) {
	store, err := kvstore.New(db, practicesScope)
	if err != nil {
		return nil, nil, err
	}
	saved := make([]model.SavedPractice, 0)
	if _, err := kvstore.GetJSON(store, savedKey, &saved); err != nil {
		return nil, nil, fmt.Errorf("load saved practices: %w", err)
	}
	return store, saved, nil
}

func findPractice(practices []model.Practice, name string) (model.Practice, bool) {
	target := normalizeName(name)
	for _, p := range practices {
		if normalizeName(p.Name) == target {
			return p, true
		}
	}
	return model.Practice{}, false
}
