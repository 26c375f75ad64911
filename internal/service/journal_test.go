package service_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

func TestAddGratitudeEntryItemLimits(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	if _, err := service.AddGratitudeEntry(db, service.AddGratitudeInput{Date: "2026-04-01", Items: []string{" ", ""}}); err == nil {
		t.Fatalf("expected blank items to be rejected")
	}
	if _, err := service.AddGratitudeEntry(db, service.AddGratitudeInput{Date: "2026-04-01", Items: []string{"a", "b", "c", "d"}}); err == nil {
		t.Fatalf("expected four items to be rejected")
	}
	entry, err := service.AddGratitudeEntry(db, service.AddGratitudeInput{
		Date:  "2026-04-01",
		Items: []string{" morning walk ", "", "call with mom"},
		Mood:  "Calm",
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if diff := cmp.Diff([]string{"morning walk", "call with mom"}, entry.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if entry.Mood != "calm" || entry.ID == "" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestListGratitudeEntriesByDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	for _, d := range []string{"2026-04-01", "2026-04-03", "2026-04-01"} {
		if _, err := service.AddGratitudeEntry(db, service.AddGratitudeInput{Date: d, Items: []string{"tea"}}); err != nil {
			t.Fatalf("add %s: %v", d, err)
		}
	}

	all, err := service.ListGratitudeEntries(db, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 || all[0].Date != "2026-04-03" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	day, err := service.ListGratitudeEntries(db, "2026-04-01")
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 entries on 2026-04-01, got %d", len(day))
	}
	if _, err := service.ListGratitudeEntries(db, "April 1"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func TestDeleteGratitudeEntry(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	entry, err := service.AddGratitudeEntry(db, service.AddGratitudeInput{Date: "2026-04-01", Items: []string{"sunlight"}})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if err := service.DeleteGratitudeEntry(db, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := service.DeleteGratitudeEntry(db, entry.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
