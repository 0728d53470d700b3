package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteTask struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	DueDate     string  `json:"due_date"`
	Completed   bool    `json:"completed"`
	XPReward    int     `json:"xp_reward"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

func taskToRemote(userID string, t model.Task) remoteTask {
	r := remoteTask{
		ID:        t.ID,
		UserID:    userID,
		Title:     t.Title,
		DueDate:   t.DueDate,
		Completed: t.Completed,
		XPReward:  t.XPReward,
		CreatedAt: formatTime(t.CreatedAt),
	}
	if t.CompletedAt != nil {
		s := formatTime(*t.CompletedAt)
		r.CompletedAt = &s
	}
	return r
}

func (r remoteTask) toLocal() model.Task {
	t := model.Task{
		ID:        r.ID,
		Title:     r.Title,
		DueDate:   r.DueDate,
		Completed: r.Completed,
		XPReward:  r.XPReward,
		CreatedAt: parseTime(r.CreatedAt),
	}
	if r.CompletedAt != nil && *r.CompletedAt != "" {
		at := parseTime(*r.CompletedAt)
		t.CompletedAt = &at
	}
	return t
}

// FetchTasks returns all tasks owned by the user, oldest first.
func (c *Client) FetchTasks(ctx context.Context, userID string) ([]model.Task, error) {
	if userID == "" {
		return []model.Task{}, nil
	}
	var rows []remoteTask
	q := url.Values{"user_id": {eq(userID)}, "order": {"created_at.asc"}}
	if err := c.do(ctx, http.MethodGet, "tasks", q, "", nil, &rows); err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toLocal())
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, userID string, t model.Task) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "tasks", nil, "", taskToRemote(userID, t), nil)
}

// UpdateTask sends a sparse patch for one task row.
func (c *Client) UpdateTask(ctx context.Context, userID, taskID string, patch model.TaskPatch) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.DueDate != nil {
		fields["due_date"] = *patch.DueDate
	}
	if patch.Completed != nil {
		fields["completed"] = *patch.Completed
	}
	if patch.XPReward != nil {
		fields["xp_reward"] = *patch.XPReward
	}
	if patch.CompletedAt != nil {
		if *patch.CompletedAt == "" {
			fields["completed_at"] = nil
		} else {
			fields["completed_at"] = *patch.CompletedAt
		}
	}
	if len(fields) == 0 {
		return nil
	}
	q := url.Values{"id": {eq(taskID)}, "user_id": {eq(userID)}}
	return c.do(ctx, http.MethodPatch, "tasks", q, "", fields, nil)
}

func (c *Client) DeleteTask(ctx context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	q := url.Values{"id": {eq(taskID)}, "user_id": {eq(userID)}}
	return c.do(ctx, http.MethodDelete, "tasks", q, "", nil, nil)
}
