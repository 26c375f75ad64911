package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a log entry or saved item does not exist.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// dateOrToday validates a YYYY-MM-DD date, defaulting to today.
func dateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

// computeBooleanStreak returns the run of trailing days matching predicate
// and the longest run anywhere in days.
func computeBooleanStreak[T any](days []T, predicate func(T) bool) (current, longest int) {
	run := 0
	for i := range days {
		if predicate(days[i]) {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	for i := len(days) - 1; i >= 0; i-- {
		if predicate(days[i]) {
			current++
			continue
		}
		break
	}
	return current, longest
}
