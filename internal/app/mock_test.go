package app_test

import (
	"context"
	"sync"
	"testing"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
	"github.com/sadopc/fitsync/internal/store"
)

// mockGateway records calls and serves canned fetch results. Zero value is
// an empty backend that never fails.
type mockGateway struct {
	mu    sync.Mutex
	calls map[string]int

	failOps map[string]error

	profile  *model.UserProfile
	tasks    []model.Task
	meals    []model.Meal
	workouts []model.WorkoutSession
	friends  []model.Friend
	settings *model.AppSettings

	taskPatches    []model.TaskPatch
	profilePatches []model.ProfilePatch

	// onFetchTasks observes container state mid-pull.
	onFetchTasks func()
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		calls:   map[string]int{},
		failOps: map[string]error{},
	}
}

func (g *mockGateway) record(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[op]++
	return g.failOps[op]
}

func (g *mockGateway) callCount(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *mockGateway) totalCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

func (g *mockGateway) FetchProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if err := g.record("FetchProfile"); err != nil {
		return nil, err
	}
	return g.profile, nil
}

func (g *mockGateway) UpsertProfile(ctx context.Context, userID string, p model.UserProfile) error {
	return g.record("UpsertProfile")
}

func (g *mockGateway) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) error {
	err := g.record("UpdateProfile")
	g.mu.Lock()
	g.profilePatches = append(g.profilePatches, patch)
	g.mu.Unlock()
	return err
}

func (g *mockGateway) FetchTasks(ctx context.Context, userID string) ([]model.Task, error) {
	if g.onFetchTasks != nil {
		g.onFetchTasks()
	}
	if err := g.record("FetchTasks"); err != nil {
		return nil, err
	}
	return g.tasks, nil
}

func (g *mockGateway) CreateTask(ctx context.Context, userID string, t model.Task) error {
	return g.record("CreateTask")
}

func (g *mockGateway) UpdateTask(ctx context.Context, userID, taskID string, patch model.TaskPatch) error {
	err := g.record("UpdateTask")
	g.mu.Lock()
	g.taskPatches = append(g.taskPatches, patch)
	g.mu.Unlock()
	return err
}

func (g *mockGateway) DeleteTask(ctx context.Context, userID, taskID string) error {
	return g.record("DeleteTask")
}

func (g *mockGateway) FetchMeals(ctx context.Context, userID string) ([]model.Meal, error) {
	if err := g.record("FetchMeals"); err != nil {
		return nil, err
	}
	return g.meals, nil
}

func (g *mockGateway) CreateMeal(ctx context.Context, userID string, m model.Meal) error {
	return g.record("CreateMeal")
}

func (g *mockGateway) DeleteMeal(ctx context.Context, userID, mealID string) error {
	return g.record("DeleteMeal")
}

func (g *mockGateway) FetchWorkouts(ctx context.Context, userID string) ([]model.WorkoutSession, error) {
	if err := g.record("FetchWorkouts"); err != nil {
		return nil, err
	}
	return g.workouts, nil
}

func (g *mockGateway) CreateWorkout(ctx context.Context, userID string, w model.WorkoutSession) error {
	return g.record("CreateWorkout")
}

func (g *mockGateway) DeleteWorkout(ctx context.Context, userID, sessionID string) error {
	return g.record("DeleteWorkout")
}

func (g *mockGateway) FetchFriends(ctx context.Context, userID string) ([]model.Friend, error) {
	if err := g.record("FetchFriends"); err != nil {
		return nil, err
	}
	return g.friends, nil
}

func (g *mockGateway) UpsertFriend(ctx context.Context, userID string, f model.Friend) error {
	return g.record("UpsertFriend")
}

func (g *mockGateway) UpdateFriend(ctx context.Context, userID, friendID string, patch model.FriendPatch) error {
	return g.record("UpdateFriend")
}

func (g *mockGateway) DeleteFriend(ctx context.Context, userID, friendID string) error {
	return g.record("DeleteFriend")
}

func (g *mockGateway) FetchSettings(ctx context.Context, userID string) (*model.AppSettings, error) {
	if err := g.record("FetchSettings"); err != nil {
		return nil, err
	}
	return g.settings, nil
}

func (g *mockGateway) UpsertSettings(ctx context.Context, userID string, s model.AppSettings) error {
	return g.record("UpsertSettings")
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewMemory(nil)
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// newAnonApp is a local-only container (no gateway at all).
func newAnonApp(t *testing.T) *app.App {
	t.Helper()
	return app.New(newTestStore(t), nil, nil)
}

// newCloudApp is a container in cloud mode with identity already set.
func newCloudApp(t *testing.T, gw *mockGateway) *app.App {
	t.Helper()
	a := app.New(newTestStore(t), gw, nil)
	a.SetIdentity(context.Background(), "u1")
	a.WaitRemote()
	return a
}
