package model

import "time"

type SleepEntry struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Bedtime       string    `json:"bedtime"`
	WakeTime      string    `json:"wake_time"`
	DurationHours float64   `json:"duration_hours"`
	Quality       int       `json:"quality"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type GratitudeEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Items     []string  `json:"items"`
	Mood      string    `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Practice struct {
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Minutes     int      `json:"minutes" yaml:"minutes"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
}

type SavedPractice struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedTargets is a calculated target set pinned to an effective date.
type SavedTargets struct {
	ID int64 `json:"id"`
	CalculatedTargets
	EffectiveDate string    `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
}
