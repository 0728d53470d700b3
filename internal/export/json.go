package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fitsync/internal/model"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Workouts   []jsonWorkout `json:"workouts"`
}

type jsonWorkout struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`
	DurationM int            `json:"duration_minutes"`
	TotalXP   int            `json:"total_xp"`
	Notes     string         `json:"notes,omitempty"`
	Exercises []jsonExercise `json:"exercises"`
}

type jsonExercise struct {
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	CompletedSets int     `json:"completed_sets"`
	Weight        float64 `json:"weight,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// WorkoutsToJSON writes the workout history, exercises included.
func WorkoutsToJSON(workouts []model.WorkoutSession, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(workouts),
	}

	for _, w := range workouts {
		jw := jsonWorkout{
			ID:        w.ID,
			Date:      w.Date.Local().Format(time.RFC3339),
			DurationM: w.Duration,
			TotalXP:   w.TotalXP,
			Notes:     w.Notes,
		}
		for _, e := range w.Exercises {
			jw.Exercises = append(jw.Exercises, jsonExercise{
				Name:          e.Name,
				Sets:          e.Sets,
				Reps:          e.Reps,
				CompletedSets: e.CompletedSets,
				Weight:        e.Weight,
				Notes:         e.Notes,
			})
		}
		export.Workouts = append(export.Workouts, jw)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
