package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sadopc/fitsync/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c, err := New(Config{BaseURL: ts.URL, APIKey: "test-key", HTTPClient: ts.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, ts
}

func TestNewRequiresConfiguration(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{BaseURL: "", APIKey: "k"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := New(Config{BaseURL: "https://x.example", APIKey: " "}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFetchTasksMapsRemoteFields(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/tasks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "eq.u1" {
			t.Errorf("user_id filter = %q", got)
		}
		if got := r.Header.Get("apikey"); got != "test-key" {
			t.Errorf("apikey header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"id":"t1","user_id":"u1","title":"Run 5k","due_date":"2026-09-01","completed":true,
   "xp_reward":100,"created_at":"2026-08-20T10:00:00Z","completed_at":"2026-08-21T09:30:00Z"},
  {"id":"t2","user_id":"u1","title":"Stretch","due_date":"2026-09-02","completed":false,
   "xp_reward":50,"created_at":"2026-08-22T10:00:00Z"}
]`))
	}))

	tasks, err := c.FetchTasks(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Run 5k" || tasks[0].DueDate != "2026-09-01" || tasks[0].XPReward != 100 {
		t.Fatalf("unexpected task mapping: %+v", tasks[0])
	}
	if tasks[0].CompletedAt == nil {
		t.Fatal("expected completed_at to map onto CompletedAt")
	}
	if tasks[1].CompletedAt != nil {
		t.Fatal("expected nil CompletedAt for incomplete task")
	}
}

func TestFetchWithoutIdentityReturnsEmptyWithoutRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	tasks, err := c.FetchTasks(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty result, got %d", len(tasks))
	}
	meals, err := c.FetchMeals(context.Background(), "")
	if err != nil || len(meals) != 0 {
		t.Fatalf("expected empty meals, got %v %v", meals, err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no backend calls, got %d", calls.Load())
	}
}

func TestMutationsWithoutIdentityReturnNotAuthenticated(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	}))

	ctx := context.Background()
	if err := c.CreateTask(ctx, "", model.Task{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := c.DeleteMeal(ctx, "", "m1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("DeleteMeal: %v", err)
	}
	if err := c.UpsertProfile(ctx, "", model.UserProfile{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if err := c.CreateWorkout(ctx, "", model.WorkoutSession{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("CreateWorkout: %v", err)
	}
}

func TestUpdateTaskSendsOnlyPatchedFields(t *testing.T) {
	t.Parallel()

	var body map[string]any
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode patch body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	completed := true
	completedAt := "2026-08-28T12:00:00Z"
	err := c.UpdateTask(context.Background(), "u1", "t1", model.TaskPatch{
		Completed:   &completed,
		CompletedAt: &completedAt,
	})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("expected 2 fields in patch, got %v", body)
	}
	if body["completed"] != true || body["completed_at"] != completedAt {
		t.Fatalf("unexpected patch body: %v", body)
	}
	if _, present := body["title"]; present {
		t.Fatal("unpatched field leaked into payload")
	}
}

func TestUpdateProfileEmptyPatchSkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	if err := c.UpdateProfile(context.Background(), "u1", model.ProfilePatch{}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatal("empty patch must not hit the backend")
	}
}

func TestUpsertProfileSendsMergePrefer(t *testing.T) {
	t.Parallel()

	var prefer string
	var row remoteProfile
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefer = r.Header.Get("Prefer")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &row)
		w.WriteHeader(http.StatusCreated)
	}))

	p := model.UserProfile{XP: 2550, Level: 3, Name: "Athlete", CaloriesGoal: 2000}
	if err := c.UpsertProfile(context.Background(), "u1", p); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if prefer != "resolution=merge-duplicates" {
		t.Fatalf("Prefer header = %q", prefer)
	}
	if row.ID != "u1" || row.XP != 2550 || row.CaloriesGoal != 2000 {
		t.Fatalf("unexpected upsert row: %+v", row)
	}
}

func TestCreateWorkoutPartialFailureKeepsSession(t *testing.T) {
	t.Parallel()

	var sessionInserted atomic.Bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/workout_sessions":
			sessionInserted.Store(true)
			w.WriteHeader(http.StatusCreated)
		case "/rest/v1/workout_exercises":
			http.Error(w, `{"message":"constraint violation"}`, http.StatusConflict)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	w := model.WorkoutSession{
		ID:       "s1",
		Duration: 45,
		TotalXP:  150,
		Exercises: []model.Exercise{
			{ID: "e1", Name: "Squat", Sets: 5, Reps: 5, CompletedSets: 5},
		},
	}
	err := c.CreateWorkout(context.Background(), "u1", w)
	if err == nil {
		t.Fatal("expected exercise-stage error")
	}
	if !sessionInserted.Load() {
		t.Fatal("session insert should have happened before the failing batch")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("expected wrapped APIError 409, got %v", err)
	}
}

func TestFetchProfileMissingRowReturnsNil(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	p, err := c.FetchProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile, got %+v", p)
	}
}

func TestBackendErrorSurfacesStatus(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"row level security"}`, http.StatusForbidden)
	}))

	err := c.CreateMeal(context.Background(), "u1", model.Meal{ID: "m1", Name: "Oats"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Fatalf("status = %d", apiErr.Status)
	}
}
