package service_test

import (
	"testing"

	"github.com/rajeshkanna-s/healthyplates/internal/model"
	"github.com/rajeshkanna-s/healthyplates/internal/service"
)

func TestSetConfigValidatesKnownKeys(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	bad := map[string]string{
		service.ConfigSleepGoalHours: "30",
		service.ConfigDefaultPeople:  "0",
		service.ConfigDefaultCuisine: "thai",
		service.ConfigDefaultDiet:    "keto",
	}
	for key, value := range bad {
		if err := service.SetConfig(db, key, value); err == nil {
			t.Fatalf("expected %s=%s to be rejected", key, value)
		}
	}
	if err := service.SetConfig(db, "Default_Cuisine", " North "); err != nil {
		t.Fatalf("set cuisine: %v", err)
	}
	v, ok, err := service.GetConfig(db, service.ConfigDefaultCuisine)
	if err != nil || !ok || v != "north" {
		t.Fatalf("expected normalized cuisine, got %q ok=%v err=%v", v, ok, err)
	}
	if err := service.SetConfig(db, "theme", "dark"); err != nil {
		t.Fatalf("set free-form key: %v", err)
	}
}

func TestGroceryDefaultsFillOnlyUnsetFields(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	for k, v := range map[string]string{
		service.ConfigDefaultPeople:  "3",
		service.ConfigDefaultCuisine: "mixed",
		service.ConfigDefaultDiet:    "veg",
	} {
		if err := service.SetConfig(db, k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	prefs := model.UserPreferences{Diet: model.DietNonVeg}
	if err := service.GroceryDefaults(db, &prefs); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if prefs.PeopleCount != 3 || prefs.Cuisine != model.CuisineMixed || prefs.Diet != model.DietNonVeg {
		t.Fatalf("unexpected prefs: %+v", prefs)
	}
}

func TestSleepGoalHoursDefault(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	goal, err := service.SleepGoalHours(db)
	if err != nil {
		t.Fatalf("sleep goal: %v", err)
	}
	if goal != 8 {
		t.Fatalf("expected seeded goal 8, got %v", goal)
	}
}
