package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteWorkout struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Date      string           `json:"date"`
	Duration  int              `json:"duration_minutes"`
	TotalXP   int              `json:"total_xp"`
	Notes     string           `json:"notes,omitempty"`
	Exercises []remoteExercise `json:"workout_exercises,omitempty"`
}

type remoteExercise struct {
	ID            string  `json:"id"`
	SessionID     string  `json:"session_id"`
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	CompletedSets int     `json:"completed_sets"`
	Weight        float64 `json:"weight,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

func workoutToRemote(userID string, w model.WorkoutSession) remoteWorkout {
	return remoteWorkout{
		ID:       w.ID,
		UserID:   userID,
		Date:     formatTime(w.Date),
		Duration: w.Duration,
		TotalXP:  w.TotalXP,
		Notes:    w.Notes,
	}
}

func exerciseToRemote(sessionID string, e model.Exercise) remoteExercise {
	return remoteExercise{
		ID:            e.ID,
		SessionID:     sessionID,
		Name:          e.Name,
		Sets:          e.Sets,
		Reps:          e.Reps,
		CompletedSets: e.CompletedSets,
		Weight:        e.Weight,
		Notes:         e.Notes,
	}
}

func (r remoteWorkout) toLocal() model.WorkoutSession {
	w := model.WorkoutSession{
		ID:        r.ID,
		Date:      parseTime(r.Date),
		Duration:  r.Duration,
		TotalXP:   r.TotalXP,
		Notes:     r.Notes,
		Exercises: make([]model.Exercise, 0, len(r.Exercises)),
	}
	for _, e := range r.Exercises {
		w.Exercises = append(w.Exercises, model.Exercise{
			ID:            e.ID,
			Name:          e.Name,
			Sets:          e.Sets,
			Reps:          e.Reps,
			CompletedSets: e.CompletedSets,
			Weight:        e.Weight,
			Notes:         e.Notes,
		})
	}
	return w
}

// FetchWorkouts returns all sessions with their exercises embedded, newest
// first.
func (c *Client) FetchWorkouts(ctx context.Context, userID string) ([]model.WorkoutSession, error) {
	if userID == "" {
		return []model.WorkoutSession{}, nil
	}
	var rows []remoteWorkout
	q := url.Values{
		"user_id": {eq(userID)},
		"select":  {"*,workout_exercises(*)"},
		"order":   {"date.desc"},
	}
	if err := c.do(ctx, http.MethodGet, "workout_sessions", q, "", nil, &rows); err != nil {
		return nil, err
	}
	workouts := make([]model.WorkoutSession, 0, len(rows))
	for _, r := range rows {
		workouts = append(workouts, r.toLocal())
	}
	return workouts, nil
}

// CreateWorkout inserts the session row, then the exercise batch. When the
// batch fails after the session insert succeeded, the session row persists
// and the returned error names the exercise stage; callers must treat that
// as partial success, not total rollback.
func (c *Client) CreateWorkout(ctx context.Context, userID string, w model.WorkoutSession) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if err := c.do(ctx, http.MethodPost, "workout_sessions", nil, "", workoutToRemote(userID, w), nil); err != nil {
		return fmt.Errorf("create workout session: %w", err)
	}
	if len(w.Exercises) == 0 {
		return nil
	}
	batch := make([]remoteExercise, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		batch = append(batch, exerciseToRemote(w.ID, e))
	}
	if err := c.do(ctx, http.MethodPost, "workout_exercises", nil, "", batch, nil); err != nil {
		return fmt.Errorf("create workout exercises (session %s persisted): %w", w.ID, err)
	}
	return nil
}

// DeleteWorkout removes the exercise rows first, then the session.
func (c *Client) DeleteWorkout(ctx context.Context, userID, sessionID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	q := url.Values{"session_id": {eq(sessionID)}}
	if err := c.do(ctx, http.MethodDelete, "workout_exercises", q, "", nil, nil); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}
	q = url.Values{"id": {eq(sessionID)}, "user_id": {eq(userID)}}
	if err := c.do(ctx, http.MethodDelete, "workout_sessions", q, "", nil, nil); err != nil {
		return fmt.Errorf("delete workout session: %w", err)
	}
	return nil
}
