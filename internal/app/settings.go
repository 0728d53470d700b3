package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sadopc/fitsync/internal/model"
)

// UpdateSettings applies a partial settings update. The full row is pushed
// remotely; the autosave daemon re-pushes it later as a durability
// backstop (both writers upsert the same full-row shape).
func (a *App) UpdateSettings(patch model.SettingsPatch) (model.AppSettings, error) {
	if patch.DailyResetHour != nil && (*patch.DailyResetHour < 0 || *patch.DailyResetHour > 23) {
		return model.AppSettings{}, fmt.Errorf("daily reset hour must be 0-23, got %d", *patch.DailyResetHour)
	}

	a.mu.Lock()
	if patch.ExerciseList != nil {
		a.settings.ExerciseList = append([]string(nil), (*patch.ExerciseList)...)
	}
	if patch.DailyResetHour != nil {
		a.settings.DailyResetHour = *patch.DailyResetHour
	}
	if patch.NotificationsEnabled != nil {
		a.settings.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.DarkMode != nil {
		a.settings.DarkMode = *patch.DarkMode
	}
	a.persist(keySettings, a.settings)
	a.markDirtyLocked()
	s := a.settings
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("upsert settings", uid, func(ctx context.Context) error {
		return a.gw.UpsertSettings(ctx, uid, s)
	})
	return s, nil
}

// AddExerciseToCatalog appends to the user-editable exercise catalog,
// skipping duplicates. The check and the append happen under one lock so
// concurrent adds cannot drop entries.
func (a *App) AddExerciseToCatalog(name string) (model.AppSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.AppSettings{}, fmt.Errorf("exercise name is required")
	}

	a.mu.Lock()
	for _, existing := range a.settings.ExerciseList {
		if existing == name {
			s := a.settings
			a.mu.Unlock()
			return s, nil
		}
	}
	a.settings.ExerciseList = append(a.settings.ExerciseList, name)
	a.persist(keySettings, a.settings)
	a.markDirtyLocked()
	s := a.settings
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("upsert settings", uid, func(ctx context.Context) error {
		return a.gw.UpsertSettings(ctx, uid, s)
	})
	return s, nil
}
