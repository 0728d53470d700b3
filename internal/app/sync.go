package app

import (
	"context"
	"errors"
	"time"

	"github.com/sadopc/fitsync/internal/model"
)

// SetIdentity reacts to a session transition (null→id, id→different id,
// id→null). On any change every local slot is purged to its default BEFORE
// anything else runs, so a previous user's cached data can never leak into
// the new session. With a new non-empty identity in cloud mode, a full pull
// follows the purge.
func (a *App) SetIdentity(ctx context.Context, userID string) {
	a.mu.Lock()
	if userID == a.userID {
		a.mu.Unlock()
		return
	}
	a.userID = userID
	a.purgeLocked()
	cloud := a.cloudLocked()
	a.mu.Unlock()

	if cloud {
		if err := a.Sync(ctx); err != nil {
			a.log.Warn("initial sync failed", "err", err)
		}
	}
}

// purgeLocked resets every slot to its default in memory and wipes the
// durable mirror. Caller holds the mutex.
func (a *App) purgeLocked() {
	a.profile = model.DefaultProfile()
	a.tasks = []model.Task{}
	a.meals = []model.Meal{}
	a.exercises = []model.Exercise{}
	a.workouts = []model.WorkoutSession{}
	a.friends = []model.Friend{}
	a.settings = model.DefaultSettings()
	a.lastSync = time.Time{}
	if err := a.store.ClearAll(); err != nil {
		a.log.Warn("purge local slots failed", "err", err)
	}
}

// Sync performs a full pull and replaces local collections unconditionally:
// an empty remote answer still clears stale local data (fetch-and-replace,
// never fetch-and-merge). Individual fetch failures are logged and skipped;
// the app continues with whatever was fetched. The joined error is returned
// for callers that want to report it, but it is never fatal.
func (a *App) Sync(ctx context.Context) error {
	a.mu.Lock()
	if !a.cloudLocked() || a.syncing {
		a.mu.Unlock()
		return nil
	}
	a.syncing = true
	uid := a.userID
	a.mu.Unlock()

	// Fetches run outside the lock; mutations interleaving with a sync
	// resolve by last-writer-wins on each slot.
	profile, errProfile := a.gw.FetchProfile(ctx, uid)
	tasks, errTasks := a.gw.FetchTasks(ctx, uid)
	meals, errMeals := a.gw.FetchMeals(ctx, uid)
	workouts, errWorkouts := a.gw.FetchWorkouts(ctx, uid)
	friends, errFriends := a.gw.FetchFriends(ctx, uid)
	settings, errSettings := a.gw.FetchSettings(ctx, uid)

	a.mu.Lock()
	// A stale pull for a replaced identity must not touch the new state.
	if a.userID == uid {
		if errProfile == nil && profile != nil {
			a.profile = *profile
			a.persist(keyProfile, a.profile)
		}
		if errTasks == nil {
			a.tasks = tasks
			a.persist(keyTasks, a.tasks)
		}
		if errMeals == nil {
			a.meals = meals
			a.persist(keyMeals, a.meals)
		}
		if errWorkouts == nil {
			a.workouts = workouts
			a.persist(keyWorkouts, a.workouts)
		}
		if errFriends == nil {
			a.friends = friends
			a.persist(keyFriends, a.friends)
		}
		if errSettings == nil && settings != nil {
			a.settings = *settings
			a.persist(keySettings, a.settings)
		}
		a.lastSync = time.Now().UTC()
		a.persist(keyLastSync, a.lastSync)
	}
	a.syncing = false
	a.mu.Unlock()

	err := errors.Join(errProfile, errTasks, errMeals, errWorkouts, errFriends, errSettings)
	if err != nil {
		a.log.Warn("sync pull incomplete", "err", err)
	}
	return err
}

// ResetAllData purges every slot and the sync timestamp. Used for sign-out
// and account deletion; the remote copy is untouched.
func (a *App) ResetAllData() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = ""
	a.purgeLocked()
}

// FlushProfile upserts the full current profile and settings rows. This is
// the autosave daemon's flush target; it is also safe to call directly
// (trigger-autosave-now).
func (a *App) FlushProfile(ctx context.Context) error {
	a.mu.Lock()
	if !a.cloudLocked() {
		a.mu.Unlock()
		return nil
	}
	uid := a.userID
	profile := a.profile
	settings := a.settings
	a.mu.Unlock()

	return errors.Join(
		a.gw.UpsertProfile(ctx, uid, profile),
		a.gw.UpsertSettings(ctx, uid, settings),
	)
}
