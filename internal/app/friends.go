package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/fitsync/internal/model"
)

// AddFriendInput creates a leaderboard entry.
type AddFriendInput struct {
	Name   string
	XP     int
	Avatar string
}

// AddFriend adds a leaderboard entry. Level and tier are derived from XP
// with the same formula as the user's own profile.
func (a *App) AddFriend(in AddFriendInput) (model.Friend, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Friend{}, fmt.Errorf("friend name is required")
	}
	if in.XP < 0 {
		in.XP = 0
	}
	now := time.Now().UTC()
	level := model.LevelForXP(in.XP)
	f := model.Friend{
		ID:         uuid.NewString(),
		Name:       name,
		XP:         in.XP,
		Level:      level,
		Tier:       model.TierForLevel(level),
		Avatar:     in.Avatar,
		LastActive: &now,
	}

	a.mu.Lock()
	a.friends = append(a.friends, f)
	a.persist(keyFriends, a.friends)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("upsert friend", uid, func(ctx context.Context) error {
		return a.gw.UpsertFriend(ctx, uid, f)
	})
	return f, nil
}

// UpdateFriendXP replaces a friend's XP and re-derives level and tier.
func (a *App) UpdateFriendXP(id string, xp int) (model.Friend, error) {
	if xp < 0 {
		xp = 0
	}
	a.mu.Lock()
	idx := -1
	for i := range a.friends {
		if a.friends[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return model.Friend{}, fmt.Errorf("friend %q not found", id)
	}
	f := &a.friends[idx]
	now := time.Now().UTC()
	f.XP = xp
	f.Level = model.LevelForXP(xp)
	f.Tier = model.TierForLevel(f.Level)
	f.LastActive = &now
	a.persist(keyFriends, a.friends)
	out := *f
	uid := a.userID
	a.mu.Unlock()

	level, tier := out.Level, out.Tier
	lastActive := now.Format(time.RFC3339)
	a.remoteAsync("update friend xp", uid, func(ctx context.Context) error {
		return a.gw.UpdateFriend(ctx, uid, out.ID, model.FriendPatch{
			XP:         &xp,
			Level:      &level,
			Tier:       &tier,
			LastActive: &lastActive,
		})
	})
	return out, nil
}

// RemoveFriend drops a leaderboard entry.
func (a *App) RemoveFriend(id string) error {
	a.mu.Lock()
	kept := a.friends[:0]
	found := false
	for _, f := range a.friends {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		a.mu.Unlock()
		return fmt.Errorf("friend %q not found", id)
	}
	a.friends = kept
	a.persist(keyFriends, a.friends)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("delete friend", uid, func(ctx context.Context) error {
		return a.gw.DeleteFriend(ctx, uid, id)
	})
	return nil
}
