package service_test

import (
	"testing"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

func TestTargetsVersioningByEffectiveDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	january := model.CalculatedTargets{BMR: 1618, TDEE: 2508, TargetCalories: 2508, ProteinG: 98, CarbsG: 372, FatG: 70, BMI: 24.2}
	february := january
	february.TargetCalories = 2208
	february.DailyCalorieDelta = -300

	if err := service.SaveTargets(db, january, "2026-01-01"); err != nil {
		t.Fatalf("save january: %v", err)
	}
	if err := service.SaveTargets(db, february, "2026-02-01"); err != nil {
		t.Fatalf("save february: %v", err)
	}

	got, err := service.CurrentTargets(db, "2026-01-15")
	if err != nil {
		t.Fatalf("current january: %v", err)
	}
	if got == nil || got.TargetCalories != 2508 {
		t.Fatalf("expected january target 2508, got %+v", got)
	}
	got, err = service.CurrentTargets(db, "2026-02-10")
	if err != nil {
		t.Fatalf("current february: %v", err)
	}
	if got == nil || got.TargetCalories != 2208 || got.DailyCalorieDelta != -300 {
		t.Fatalf("expected february target 2208, got %+v", got)
	}

	before, err := service.CurrentTargets(db, "2025-12-31")
	if err != nil {
		t.Fatalf("current before first: %v", err)
	}
	if before != nil {
		t.Fatalf("expected no targets before first save, got %+v", before)
	}
}

func TestSaveTargetsOverwritesSameDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	base := model.CalculatedTargets{BMR: 1400, TDEE: 1900, TargetCalories: 1600, ProteinG: 90, CarbsG: 200, FatG: 50}
	if err := service.SaveTargets(db, base, "2026-03-01"); err != nil {
		t.Fatalf("save: %v", err)
	}
	base.TargetCalories = 1700
	if err := service.SaveTargets(db, base, "2026-03-01"); err != nil {
		t.Fatalf("save again: %v", err)
	}
	history, err := service.TargetsHistory(db)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].TargetCalories != 1700 {
		t.Fatalf("expected single overwritten row, got %+v", history)
	}
}

func TestSaveTargetsValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	if err := service.SaveTargets(db, model.CalculatedTargets{TargetCalories: -1}, "2026-03-01"); err == nil {
		t.Fatalf("expected negative calories to be rejected")
	}
	if err := service.SaveTargets(db, model.CalculatedTargets{TargetCalories: 1500}, "03/01/2026"); err == nil {
		t.Fatalf("expected invalid date to be rejected")
	}
}
