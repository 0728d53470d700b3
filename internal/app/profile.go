package app

import (
	"context"
	"fmt"

	"github.com/sadopc/fitsync/internal/model"
)

// GrantXP is the single XP primitive. Every XP-granting action (task
// completion, meal logging, final-set completion, workout save) funnels
// through the same locked helper so the level derivation cannot be
// bypassed.
func (a *App) GrantXP(amount int) model.UserProfile {
	a.mu.Lock()
	p := a.grantXPLocked(amount)
	uid := a.userID
	a.mu.Unlock()

	a.pushProfileXP(uid, p)
	return p
}

// grantXPLocked mutates XP and recomputes level from the new value. The
// caller holds the mutex.
func (a *App) grantXPLocked(amount int) model.UserProfile {
	a.profile.XP += amount
	if a.profile.XP < 0 {
		a.profile.XP = 0
	}
	a.profile.Level = model.LevelForXP(a.profile.XP)
	a.persist(keyProfile, a.profile)
	a.markDirtyLocked()
	return a.profile
}

// pushProfileXP follows an XP grant with a sparse {xp, level} patch.
func (a *App) pushProfileXP(uid string, p model.UserProfile) {
	xp, level := p.XP, p.Level
	a.remoteAsync("push profile xp", uid, func(ctx context.Context) error {
		return a.gw.UpdateProfile(ctx, uid, model.ProfilePatch{XP: &xp, Level: &level})
	})
}

// UpdateProfile applies a partial profile update. XP and Level in the patch
// are ignored here; XP moves only through GrantXP.
func (a *App) UpdateProfile(patch model.ProfilePatch) (model.UserProfile, error) {
	if patch.CaloriesGoal != nil && *patch.CaloriesGoal <= 0 {
		return model.UserProfile{}, fmt.Errorf("calories goal must be positive")
	}
	if patch.ProteinGoal != nil && *patch.ProteinGoal <= 0 {
		return model.UserProfile{}, fmt.Errorf("protein goal must be positive")
	}
	if patch.CarbsGoal != nil && *patch.CarbsGoal <= 0 {
		return model.UserProfile{}, fmt.Errorf("carbs goal must be positive")
	}
	if patch.FatsGoal != nil && *patch.FatsGoal <= 0 {
		return model.UserProfile{}, fmt.Errorf("fats goal must be positive")
	}

	a.mu.Lock()
	if patch.CaloriesGoal != nil {
		a.profile.CaloriesGoal = *patch.CaloriesGoal
	}
	if patch.ProteinGoal != nil {
		a.profile.ProteinGoal = *patch.ProteinGoal
	}
	if patch.CarbsGoal != nil {
		a.profile.CarbsGoal = *patch.CarbsGoal
	}
	if patch.FatsGoal != nil {
		a.profile.FatsGoal = *patch.FatsGoal
	}
	if patch.Name != nil {
		a.profile.Name = *patch.Name
	}
	if patch.Rank != nil {
		a.profile.Rank = *patch.Rank
	}
	if patch.Email != nil {
		a.profile.Email = *patch.Email
	}
	if patch.Avatar != nil {
		a.profile.Avatar = *patch.Avatar
	}
	a.persist(keyProfile, a.profile)
	a.markDirtyLocked()
	p := a.profile
	uid := a.userID
	a.mu.Unlock()

	patch.XP, patch.Level = nil, nil
	a.remoteAsync("update profile", uid, func(ctx context.Context) error {
		return a.gw.UpdateProfile(ctx, uid, patch)
	})
	return p, nil
}
