package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/fitsync/internal/model"
)

const defaultTaskXP = 50

// AddTaskInput is what the UI supplies when creating a checklist item.
type AddTaskInput struct {
	Title    string
	DueDate  string
	XPReward int
}

// AddTask creates a task. Titles must be 2–100 characters and
// case-insensitively unique among incomplete tasks.
func (a *App) AddTask(in AddTaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if len(title) < 2 || len(title) > 100 {
		return model.Task{}, fmt.Errorf("task title must be 2-100 characters, got %d", len(title))
	}
	xp := in.XPReward
	if xp <= 0 {
		xp = defaultTaskXP
	}

	a.mu.Lock()
	for _, t := range a.tasks {
		if !t.Completed && strings.EqualFold(t.Title, title) {
			a.mu.Unlock()
			return model.Task{}, fmt.Errorf("an incomplete task titled %q already exists", title)
		}
	}
	t := model.Task{
		ID:        uuid.NewString(),
		Title:     title,
		DueDate:   in.DueDate,
		XPReward:  xp,
		CreatedAt: time.Now().UTC(),
	}
	a.tasks = append(a.tasks, t)
	a.persist(keyTasks, a.tasks)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("create task", uid, func(ctx context.Context) error {
		return a.gw.CreateTask(ctx, uid, t)
	})
	return t, nil
}

// ToggleTask flips completion. XP is granted only on the false→true
// transition; uncompleting never revokes or re-grants.
func (a *App) ToggleTask(id string) (model.Task, error) {
	a.mu.Lock()
	idx := -1
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return model.Task{}, fmt.Errorf("task %q not found", id)
	}

	t := &a.tasks[idx]
	var granted model.UserProfile
	grantedXP := false
	if !t.Completed {
		t.Completed = true
		now := time.Now().UTC()
		t.CompletedAt = &now
		granted = a.grantXPLocked(t.XPReward)
		grantedXP = true
	} else {
		t.Completed = false
		t.CompletedAt = nil
	}
	a.persist(keyTasks, a.tasks)
	out := *t
	uid := a.userID
	a.mu.Unlock()

	completed := out.Completed
	completedAt := ""
	if out.CompletedAt != nil {
		completedAt = out.CompletedAt.Format(time.RFC3339)
	}
	a.remoteAsync("toggle task", uid, func(ctx context.Context) error {
		return a.gw.UpdateTask(ctx, uid, out.ID, model.TaskPatch{
			Completed:   &completed,
			CompletedAt: &completedAt,
		})
	})
	if grantedXP {
		a.pushProfileXP(uid, granted)
	}
	return out, nil
}

// UpdateTask patches title, due date, or reward. Completion changes go
// through ToggleTask so the XP grant stays in one place.
func (a *App) UpdateTask(id string, patch model.TaskPatch) (model.Task, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if len(trimmed) < 2 || len(trimmed) > 100 {
			return model.Task{}, fmt.Errorf("task title must be 2-100 characters, got %d", len(trimmed))
		}
		patch.Title = &trimmed
	}
	if patch.XPReward != nil && *patch.XPReward <= 0 {
		return model.Task{}, fmt.Errorf("xp reward must be positive")
	}
	patch.Completed, patch.CompletedAt = nil, nil

	a.mu.Lock()
	idx := -1
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return model.Task{}, fmt.Errorf("task %q not found", id)
	}
	t := &a.tasks[idx]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.XPReward != nil {
		t.XPReward = *patch.XPReward
	}
	a.persist(keyTasks, a.tasks)
	out := *t
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("update task", uid, func(ctx context.Context) error {
		return a.gw.UpdateTask(ctx, uid, out.ID, patch)
	})
	return out, nil
}

// DeleteTask removes a task outright. No XP adjustment either way.
func (a *App) DeleteTask(id string) error {
	a.mu.Lock()
	kept := a.tasks[:0]
	found := false
	for _, t := range a.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		a.mu.Unlock()
		return fmt.Errorf("task %q not found", id)
	}
	a.tasks = kept
	a.persist(keyTasks, a.tasks)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("delete task", uid, func(ctx context.Context) error {
		return a.gw.DeleteTask(ctx, uid, id)
	})
	return nil
}
