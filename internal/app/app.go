// Package app holds the application state container: the in-memory
// authority over all user data. Every mutation applies locally first
// (memory plus durable slot), then follows with a fire-and-forget remote
// write when cloud mode is active. Remote failures never roll the local
// state back; divergence is reconciled by the next full sync pull.
package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sadopc/fitsync/internal/model"
	"github.com/sadopc/fitsync/internal/store"
)

// Durable slot keys, one per entity collection.
const (
	keyProfile   = "fitsync_profile"
	keyTasks     = "fitsync_tasks"
	keyMeals     = "fitsync_meals"
	keyExercises = "fitsync_exercises"
	keyWorkouts  = "fitsync_workouts"
	keyFriends   = "fitsync_friends"
	keySettings  = "fitsync_settings"
	keyLastSync  = "fitsync_last_sync"
)

const remoteTimeout = 15 * time.Second

// Gateway is the remote data surface the container writes through. The
// production implementation lives in internal/gateway; tests inject mocks.
type Gateway interface {
	FetchProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	UpsertProfile(ctx context.Context, userID string, p model.UserProfile) error
	UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) error

	FetchTasks(ctx context.Context, userID string) ([]model.Task, error)
	CreateTask(ctx context.Context, userID string, t model.Task) error
	UpdateTask(ctx context.Context, userID, taskID string, patch model.TaskPatch) error
	DeleteTask(ctx context.Context, userID, taskID string) error

	FetchMeals(ctx context.Context, userID string) ([]model.Meal, error)
	CreateMeal(ctx context.Context, userID string, m model.Meal) error
	DeleteMeal(ctx context.Context, userID, mealID string) error

	FetchWorkouts(ctx context.Context, userID string) ([]model.WorkoutSession, error)
	CreateWorkout(ctx context.Context, userID string, w model.WorkoutSession) error
	DeleteWorkout(ctx context.Context, userID, sessionID string) error

	FetchFriends(ctx context.Context, userID string) ([]model.Friend, error)
	UpsertFriend(ctx context.Context, userID string, f model.Friend) error
	UpdateFriend(ctx context.Context, userID, friendID string, patch model.FriendPatch) error
	DeleteFriend(ctx context.Context, userID, friendID string) error

	FetchSettings(ctx context.Context, userID string) (*model.AppSettings, error)
	UpsertSettings(ctx context.Context, userID string, s model.AppSettings) error
}

// App owns every entity collection. All access goes through its methods;
// readers receive copies.
type App struct {
	mu    sync.Mutex
	store *store.Store
	gw    Gateway // nil when the backend is not configured
	log   *slog.Logger

	userID    string
	profile   model.UserProfile
	tasks     []model.Task
	meals     []model.Meal
	exercises []model.Exercise
	workouts  []model.WorkoutSession
	friends   []model.Friend
	settings  model.AppSettings

	syncing  bool
	lastSync time.Time

	// onDirty is invoked after every profile/settings change so the
	// autosave daemon can debounce a flush. It must not call back into App.
	onDirty func()

	wg sync.WaitGroup
}

// New builds a container over the durable store, loading every slot.
// gw may be nil, which forces permanent local-only mode.
func New(st *store.Store, gw Gateway, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	a := &App{store: st, gw: gw, log: log}
	a.loadSlots()
	return a
}

func (a *App) loadSlots() {
	a.profile = store.Get(a.store, keyProfile, model.DefaultProfile())
	a.tasks = store.Get(a.store, keyTasks, []model.Task{})
	a.meals = store.Get(a.store, keyMeals, []model.Meal{})
	a.exercises = store.Get(a.store, keyExercises, []model.Exercise{})
	a.workouts = store.Get(a.store, keyWorkouts, []model.WorkoutSession{})
	a.friends = store.Get(a.store, keyFriends, []model.Friend{})
	a.settings = store.Get(a.store, keySettings, model.DefaultSettings())
	a.lastSync = store.Get(a.store, keyLastSync, time.Time{})
}

// SetDirtyHook registers the autosave notification. Pass nil to detach.
func (a *App) SetDirtyHook(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onDirty = fn
}

// WaitRemote blocks until all in-flight remote writes settle. Used on
// teardown and by tests; it is not part of any mutation's critical path.
func (a *App) WaitRemote() {
	a.wg.Wait()
}

func (a *App) cloudLocked() bool {
	return a.gw != nil && a.userID != ""
}

// remoteAsync fires a background remote write. Failures are logged, never
// propagated: the optimistic local state already committed.
func (a *App) remoteAsync(op, userID string, fn func(context.Context) error) {
	if a.gw == nil || userID == "" {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			a.log.Warn("remote write failed", "op", op, "err", err)
		}
	}()
}

// persist writes one slot, logging on failure. In-memory state stays
// authoritative for the session either way.
func (a *App) persist(key string, v any) {
	if err := store.Set(a.store, key, v); err != nil {
		a.log.Warn("persist slot failed", "key", key, "err", err)
	}
}

func (a *App) markDirtyLocked() {
	if a.onDirty != nil {
		a.onDirty()
	}
}

// Read-only views. Slices are copied so callers cannot alias container state.

func (a *App) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

func (a *App) Profile() model.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

func (a *App) Tasks() []model.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.tasks)
}

func (a *App) Meals() []model.Meal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.meals)
}

func (a *App) Exercises() []model.Exercise {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.exercises)
}

func (a *App) Workouts() []model.WorkoutSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.workouts)
}

func (a *App) Friends() []model.Friend {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.friends)
}

func (a *App) Settings() model.AppSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *App) Syncing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.syncing
}

func (a *App) LastSync() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSync
}
