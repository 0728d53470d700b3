package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/fitsync/internal/model"
)

func sampleMeals() []model.Meal {
	now := time.Now().UTC()
	return []model.Meal{
		{ID: "m1", Name: "Oats", Calories: 300, Protein: 10, Carbs: 50, Fats: 5,
			Timestamp: now.Add(-2 * time.Hour), MealType: model.MealBreakfast},
		{ID: "m2", Name: "Chicken bowl", Calories: 650, Protein: 45, Carbs: 60, Fats: 18,
			Timestamp: now, MealType: model.MealLunch},
	}
}

func sampleWorkouts() []model.WorkoutSession {
	now := time.Now().UTC()
	return []model.WorkoutSession{
		{
			ID: "w1", Date: now, Duration: 45, TotalXP: 150, Notes: "push day",
			Exercises: []model.Exercise{
				{ID: "e1", Name: "Bench Press", Sets: 3, Reps: 8, CompletedSets: 3, Weight: 80},
				{ID: "e2", Name: "Overhead Press", Sets: 3, Reps: 10, CompletedSets: 2},
			},
		},
	}
}

func TestMealsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.csv")
	if err := MealsToCSV(sampleMeals(), path); err != nil {
		t.Fatalf("MealsToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 { // header + 2 meals
		t.Fatalf("rows = %d, want 3", len(records))
	}
	if records[0][1] != "Name" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Oats" || records[1][3] != "300" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][2] != "lunch" {
		t.Fatalf("meal type column = %q", records[2][2])
	}
}

func TestMealsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.csv")
	if err := MealsToCSV(nil, path); err != nil {
		t.Fatalf("MealsToCSV: %v", err)
	}
	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestWorkoutsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.json")
	if err := WorkoutsToJSON(sampleWorkouts(), path); err != nil {
		t.Fatalf("WorkoutsToJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out jsonExport
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if out.Count != 1 || len(out.Workouts) != 1 {
		t.Fatalf("count = %d, workouts = %d", out.Count, len(out.Workouts))
	}
	w := out.Workouts[0]
	if w.TotalXP != 150 || w.DurationM != 45 {
		t.Fatalf("unexpected workout: %+v", w)
	}
	if len(w.Exercises) != 2 || w.Exercises[0].Name != "Bench Press" {
		t.Fatalf("unexpected exercises: %+v", w.Exercises)
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
}
