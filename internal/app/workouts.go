package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/fitsync/internal/model"
)

// Exercises are local-only: they exist while a workout is being composed
// and reach the backend only inside a saved session.

// AddExerciseInput is one exercise added to the active composition.
type AddExerciseInput struct {
	Name   string
	Sets   int
	Reps   int
	Weight float64
	Notes  string
}

func (a *App) AddExercise(in AddExerciseInput) (model.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Exercise{}, fmt.Errorf("exercise name is required")
	}
	if in.Sets <= 0 || in.Reps <= 0 {
		return model.Exercise{}, fmt.Errorf("sets and reps must be positive")
	}

	e := model.Exercise{
		ID:     uuid.NewString(),
		Name:   name,
		Sets:   in.Sets,
		Reps:   in.Reps,
		Weight: in.Weight,
		Notes:  in.Notes,
	}

	a.mu.Lock()
	a.exercises = append(a.exercises, e)
	a.persist(keyExercises, a.exercises)
	a.mu.Unlock()
	return e, nil
}

func (a *App) UpdateExercise(id string, patch model.ExercisePatch) (model.Exercise, error) {
	if patch.Sets != nil && *patch.Sets <= 0 {
		return model.Exercise{}, fmt.Errorf("sets must be positive")
	}
	if patch.Reps != nil && *patch.Reps <= 0 {
		return model.Exercise{}, fmt.Errorf("reps must be positive")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.exercises {
		if a.exercises[i].ID != id {
			continue
		}
		e := &a.exercises[i]
		if patch.Name != nil {
			e.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Sets != nil {
			e.Sets = *patch.Sets
			if e.CompletedSets > e.Sets {
				e.CompletedSets = e.Sets
			}
		}
		if patch.Reps != nil {
			e.Reps = *patch.Reps
		}
		if patch.CompletedSets != nil && *patch.CompletedSets >= 0 && *patch.CompletedSets <= e.Sets {
			e.CompletedSets = *patch.CompletedSets
		}
		if patch.Weight != nil {
			e.Weight = *patch.Weight
		}
		if patch.Notes != nil {
			e.Notes = *patch.Notes
		}
		a.persist(keyExercises, a.exercises)
		return *e, nil
	}
	return model.Exercise{}, fmt.Errorf("exercise %q not found", id)
}

func (a *App) DeleteExercise(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	kept := a.exercises[:0]
	found := false
	for _, e := range a.exercises {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("exercise %q not found", id)
	}
	a.exercises = kept
	a.persist(keyExercises, a.exercises)
	return nil
}

// CompleteSet marks one more set done. Finishing the final set grants the
// exercise bonus, once, on that transition.
func (a *App) CompleteSet(id string) (model.Exercise, error) {
	a.mu.Lock()
	idx := -1
	for i := range a.exercises {
		if a.exercises[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return model.Exercise{}, fmt.Errorf("exercise %q not found", id)
	}
	e := &a.exercises[idx]
	if e.CompletedSets >= e.Sets {
		out := *e
		a.mu.Unlock()
		return out, nil
	}
	e.CompletedSets++
	finished := e.CompletedSets == e.Sets
	a.persist(keyExercises, a.exercises)
	out := *e
	var granted model.UserProfile
	if finished {
		granted = a.grantXPLocked(model.ExerciseXPBonus)
	}
	uid := a.userID
	a.mu.Unlock()

	if finished {
		a.pushProfileXP(uid, granted)
	}
	return out, nil
}

// SaveWorkoutInput finalizes the active composition into a session.
type SaveWorkoutInput struct {
	Duration int // minutes
	Notes    string
	TotalXP  int // 0 means the base workout XP
}

// SaveWorkout creates the session atomically with its exercises, grants
// TotalXP, and clears the composition slot. In cloud mode the remote write
// is session-then-exercises; a failing exercise batch leaves the session
// row persisted (partial success, no rollback).
func (a *App) SaveWorkout(in SaveWorkoutInput) (model.WorkoutSession, error) {
	if in.Duration <= 0 {
		return model.WorkoutSession{}, fmt.Errorf("workout duration must be positive")
	}
	totalXP := in.TotalXP
	if totalXP <= 0 {
		totalXP = model.WorkoutBaseXP
	}

	a.mu.Lock()
	if len(a.exercises) == 0 {
		a.mu.Unlock()
		return model.WorkoutSession{}, fmt.Errorf("no exercises in the active workout")
	}
	w := model.WorkoutSession{
		ID:        uuid.NewString(),
		Date:      time.Now().UTC(),
		Duration:  in.Duration,
		TotalXP:   totalXP,
		Notes:     in.Notes,
		Exercises: append([]model.Exercise(nil), a.exercises...),
	}
	a.workouts = append([]model.WorkoutSession{w}, a.workouts...)
	a.exercises = a.exercises[:0]
	a.persist(keyWorkouts, a.workouts)
	a.persist(keyExercises, a.exercises)
	granted := a.grantXPLocked(totalXP)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("create workout", uid, func(ctx context.Context) error {
		return a.gw.CreateWorkout(ctx, uid, w)
	})
	a.pushProfileXP(uid, granted)
	return w, nil
}

// DeleteWorkout removes a session and its exercises. Granted XP stays.
func (a *App) DeleteWorkout(id string) error {
	a.mu.Lock()
	kept := a.workouts[:0]
	found := false
	for _, w := range a.workouts {
		if w.ID == id {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		a.mu.Unlock()
		return fmt.Errorf("workout %q not found", id)
	}
	a.workouts = kept
	a.persist(keyWorkouts, a.workouts)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("delete workout", uid, func(ctx context.Context) error {
		return a.gw.DeleteWorkout(ctx, uid, id)
	})
	return nil
}
