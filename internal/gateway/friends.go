package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteFriend struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	XP         int     `json:"xp"`
	Level      int     `json:"level"`
	Tier       string  `json:"tier"`
	AvatarURL  string  `json:"avatar_url,omitempty"`
	LastActive *string `json:"last_active,omitempty"`
}

func friendToRemote(userID string, f model.Friend) remoteFriend {
	r := remoteFriend{
		ID:        f.ID,
		UserID:    userID,
		Name:      f.Name,
		XP:        f.XP,
		Level:     f.Level,
		Tier:      f.Tier,
		AvatarURL: f.Avatar,
	}
	if f.LastActive != nil {
		s := formatTime(*f.LastActive)
		r.LastActive = &s
	}
	return r
}

func (r remoteFriend) toLocal() model.Friend {
	f := model.Friend{
		ID:     r.ID,
		Name:   r.Name,
		XP:     r.XP,
		Level:  r.Level,
		Tier:   r.Tier,
		Avatar: r.AvatarURL,
	}
	if r.LastActive != nil && *r.LastActive != "" {
		at := parseTime(*r.LastActive)
		f.LastActive = &at
	}
	return f
}

// FetchFriends returns the user's leaderboard entries, highest XP first.
func (c *Client) FetchFriends(ctx context.Context, userID string) ([]model.Friend, error) {
	if userID == "" {
		return []model.Friend{}, nil
	}
	var rows []remoteFriend
	q := url.Values{"user_id": {eq(userID)}, "order": {"xp.desc"}}
	if err := c.do(ctx, http.MethodGet, "friends", q, "", nil, &rows); err != nil {
		return nil, err
	}
	friends := make([]model.Friend, 0, len(rows))
	for _, r := range rows {
		friends = append(friends, r.toLocal())
	}
	return friends, nil
}

func (c *Client) UpsertFriend(ctx context.Context, userID string, f model.Friend) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "friends", nil,
		"resolution=merge-duplicates", friendToRemote(userID, f), nil)
}

// UpdateFriend sends a sparse patch for one friend row.
func (c *Client) UpdateFriend(ctx context.Context, userID, friendID string, patch model.FriendPatch) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.XP != nil {
		fields["xp"] = *patch.XP
	}
	if patch.Level != nil {
		fields["level"] = *patch.Level
	}
	if patch.Tier != nil {
		fields["tier"] = *patch.Tier
	}
	if patch.Avatar != nil {
		fields["avatar_url"] = *patch.Avatar
	}
	if patch.LastActive != nil {
		fields["last_active"] = *patch.LastActive
	}
	if len(fields) == 0 {
		return nil
	}
	q := url.Values{"id": {eq(friendID)}, "user_id": {eq(userID)}}
	return c.do(ctx, http.MethodPatch, "friends", q, "", fields, nil)
}

func (c *Client) DeleteFriend(ctx context.Context, userID, friendID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	q := url.Values{"id": {eq(friendID)}, "user_id": {eq(userID)}}
	return c.do(ctx, http.MethodDelete, "friends", q, "", nil, nil)
}
