package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sadopc/fitsync/internal/app"
	"github.com/sadopc/fitsync/internal/model"
)

func TestSetIdentityPurgesBeforeSync(t *testing.T) {
	gw := newMockGateway()
	gw.tasks = []model.Task{{ID: "r1", Title: "Remote task", XPReward: 50}}
	remoteProfile := model.UserProfile{XP: 4200, Level: 5, Name: "Cloud User", CaloriesGoal: 1800,
		ProteinGoal: 160, CarbsGoal: 200, FatsGoal: 60}
	gw.profile = &remoteProfile

	st := newTestStore(t)
	a := app.New(st, gw, nil)

	// Seed anonymous local state that must not leak into the new session.
	if _, err := a.AddTask(app.AddTaskInput{Title: "Local-only task"}); err != nil {
		t.Fatal(err)
	}
	a.GrantXP(900)

	// Observe the intermediate state while the pull is in flight: every
	// slot must already equal its default, before fetched data lands.
	gw.onFetchTasks = func() {
		if got := len(a.Tasks()); got != 0 {
			t.Errorf("tasks during sync = %d, want 0 (purged)", got)
		}
		if p := a.Profile(); p != model.DefaultProfile() {
			t.Errorf("profile during sync = %+v, want defaults", p)
		}
		if !a.Syncing() {
			t.Error("expected syncing flag during pull")
		}
	}

	a.SetIdentity(context.Background(), "u1")
	a.WaitRemote()

	if a.Syncing() {
		t.Fatal("syncing flag stuck")
	}
	if a.LastSync().IsZero() {
		t.Fatal("last sync not stamped")
	}
	tasks := a.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "r1" {
		t.Fatalf("post-sync tasks = %+v, want the remote task", tasks)
	}
	if p := a.Profile(); p.XP != 4200 || p.Name != "Cloud User" {
		t.Fatalf("post-sync profile = %+v", p)
	}
}

func TestSetIdentitySameIDIsNoop(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)
	before := gw.callCount("FetchTasks")

	a.SetIdentity(context.Background(), "u1")
	if got := gw.callCount("FetchTasks"); got != before {
		t.Fatalf("unchanged identity must not re-sync: %d -> %d", before, got)
	}
}

func TestSyncReplacesWithEmptyRemote(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	if _, err := a.AddTask(app.AddTaskInput{Title: "Task A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddTask(app.AddTaskInput{Title: "Task B"}); err != nil {
		t.Fatal(err)
	}
	a.WaitRemote()

	// Remote answers empty: stale local data must be cleared, not merged.
	gw.tasks = nil
	if err := a.Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if got := len(a.Tasks()); got != 0 {
		t.Fatalf("tasks after empty-remote sync = %d, want 0", got)
	}
}

func TestSyncKeepsSlotOnFetchError(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	if _, err := a.AddTask(app.AddTaskInput{Title: "Keep me"}); err != nil {
		t.Fatal(err)
	}
	a.WaitRemote()

	gw.failOps["FetchTasks"] = errors.New("boom")
	gw.meals = []model.Meal{{ID: "m1", Name: "Oats"}}

	err := a.Sync(context.Background())
	if err == nil {
		t.Fatal("expected joined sync error")
	}
	// Failed slot untouched, succeeding slots still replaced.
	if got := len(a.Tasks()); got != 1 {
		t.Fatalf("tasks after failed fetch = %d, want 1", got)
	}
	if got := len(a.Meals()); got != 1 {
		t.Fatalf("meals after sync = %d, want 1", got)
	}
	if a.Syncing() {
		t.Fatal("syncing flag stuck after error")
	}
}

func TestOptimisticWriteSurvivesRemoteFailure(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	gw.failOps["CreateTask"] = errors.New("network down")
	gw.failOps["UpdateProfile"] = errors.New("network down")

	task, err := a.AddTask(app.AddTaskInput{Title: "Optimistic"})
	if err != nil {
		t.Fatalf("local add must not fail on remote error: %v", err)
	}
	if _, err := a.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}
	a.WaitRemote()

	// Rejected remote writes must not revert local state.
	tasks := a.Tasks()
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("local state reverted: %+v", tasks)
	}
	if got := a.Profile().XP; got != 50 {
		t.Fatalf("xp = %d, want 50", got)
	}
	if gw.callCount("CreateTask") != 1 {
		t.Fatalf("expected one CreateTask attempt, got %d", gw.callCount("CreateTask"))
	}
}

func TestCloudMutationsReachGateway(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	task, err := a.AddTask(app.AddTaskInput{Title: "Cloud task"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ToggleTask(task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := a.AddMeal(app.AddMealInput{Name: "Oats", Calories: 300}); err != nil {
		t.Fatal(err)
	}
	a.WaitRemote()

	if gw.callCount("CreateTask") != 1 {
		t.Fatalf("CreateTask calls = %d", gw.callCount("CreateTask"))
	}
	if gw.callCount("CreateMeal") != 1 {
		t.Fatalf("CreateMeal calls = %d", gw.callCount("CreateMeal"))
	}
	// Toggle pushes a sparse task patch plus an {xp, level} profile patch.
	if gw.callCount("UpdateTask") != 1 {
		t.Fatalf("UpdateTask calls = %d", gw.callCount("UpdateTask"))
	}
	gw.mu.Lock()
	defer gw.mu.Unlock()
	if len(gw.taskPatches) != 1 {
		t.Fatalf("task patches = %d", len(gw.taskPatches))
	}
	p := gw.taskPatches[0]
	if p.Completed == nil || !*p.Completed || p.CompletedAt == nil || *p.CompletedAt == "" {
		t.Fatalf("toggle patch = %+v, want completed + completed_at only", p)
	}
	if p.Title != nil || p.DueDate != nil || p.XPReward != nil {
		t.Fatalf("toggle patch leaked unchanged fields: %+v", p)
	}
	found := false
	for _, pp := range gw.profilePatches {
		if pp.XP != nil && pp.Level != nil {
			if *pp.Level != model.LevelForXP(*pp.XP) {
				t.Fatalf("pushed level %d inconsistent with xp %d", *pp.Level, *pp.XP)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("no {xp, level} profile patch pushed")
	}
}

func TestFlushProfileUpsertsFullRows(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	a.GrantXP(100)
	if err := a.FlushProfile(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if gw.callCount("UpsertProfile") != 1 || gw.callCount("UpsertSettings") != 1 {
		t.Fatalf("flush calls = %d/%d, want 1/1",
			gw.callCount("UpsertProfile"), gw.callCount("UpsertSettings"))
	}
}

func TestFlushProfileNoopWithoutCloud(t *testing.T) {
	a := newAnonApp(t)
	a.GrantXP(100)
	if err := a.FlushProfile(context.Background()); err != nil {
		t.Fatalf("anonymous flush must be a no-op, got %v", err)
	}
}

func TestIdentitySwitchIsolatesUsers(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	if _, err := a.AddTask(app.AddTaskInput{Title: "u1 task"}); err != nil {
		t.Fatal(err)
	}
	a.WaitRemote()

	// Second user's remote data is empty; nothing from u1 may survive.
	gw.tasks = nil
	a.SetIdentity(context.Background(), "u2")
	a.WaitRemote()

	if got := len(a.Tasks()); got != 0 {
		t.Fatalf("u2 sees %d of u1's tasks", got)
	}
	if p := a.Profile(); p != model.DefaultProfile() {
		t.Fatalf("u2 inherited profile %+v", p)
	}
}

func TestLastSyncStamped(t *testing.T) {
	gw := newMockGateway()
	a := newCloudApp(t, gw)

	start := time.Now().Add(-time.Second)
	if err := a.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	if a.LastSync().Before(start) {
		t.Fatalf("last sync %v not refreshed", a.LastSync())
	}
}
