package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteProfile struct {
	ID           string `json:"id"`
	XP           int    `json:"xp"`
	Level        int    `json:"level"`
	CaloriesGoal int    `json:"calories_goal"`
	ProteinGoal  int    `json:"protein_goal"`
	CarbsGoal    int    `json:"carbs_goal"`
	FatsGoal     int    `json:"fats_goal"`
	Name         string `json:"name"`
	Rank         int    `json:"rank"`
	Email        string `json:"email,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

func profileToRemote(userID string, p model.UserProfile) remoteProfile {
	return remoteProfile{
		ID:           userID,
		XP:           p.XP,
		Level:        p.Level,
		CaloriesGoal: p.CaloriesGoal,
		ProteinGoal:  p.ProteinGoal,
		CarbsGoal:    p.CarbsGoal,
		FatsGoal:     p.FatsGoal,
		Name:         p.Name,
		Rank:         p.Rank,
		Email:        p.Email,
		AvatarURL:    p.Avatar,
	}
}

func (r remoteProfile) toLocal() model.UserProfile {
	return model.UserProfile{
		XP:           r.XP,
		Level:        r.Level,
		CaloriesGoal: r.CaloriesGoal,
		ProteinGoal:  r.ProteinGoal,
		CarbsGoal:    r.CarbsGoal,
		FatsGoal:     r.FatsGoal,
		Name:         r.Name,
		Rank:         r.Rank,
		Email:        r.Email,
		Avatar:       r.AvatarURL,
	}
}

// FetchProfile returns the user's profile row, or nil when none exists yet.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, nil
	}
	var rows []remoteProfile
	q := url.Values{"id": {eq(userID)}}
	if err := c.do(ctx, http.MethodGet, "profiles", q, "", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0].toLocal()
	return &p, nil
}

// UpsertProfile writes the full profile row keyed by user id.
func (c *Client) UpsertProfile(ctx context.Context, userID string, p model.UserProfile) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "profiles", nil,
		"resolution=merge-duplicates", profileToRemote(userID, p), nil)
}

// UpdateProfile sends a sparse patch; only assigned fields reach the wire.
func (c *Client) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	fields := map[string]any{}
	if patch.XP != nil {
		fields["xp"] = *patch.XP
	}
	if patch.Level != nil {
		fields["level"] = *patch.Level
	}
	if patch.CaloriesGoal != nil {
		fields["calories_goal"] = *patch.CaloriesGoal
	}
	if patch.ProteinGoal != nil {
		fields["protein_goal"] = *patch.ProteinGoal
	}
	if patch.CarbsGoal != nil {
		fields["carbs_goal"] = *patch.CarbsGoal
	}
	if patch.FatsGoal != nil {
		fields["fats_goal"] = *patch.FatsGoal
	}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Rank != nil {
		fields["rank"] = *patch.Rank
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Avatar != nil {
		fields["avatar_url"] = *patch.Avatar
	}
	if len(fields) == 0 {
		return nil
	}
	q := url.Values{"id": {eq(userID)}}
	return c.do(ctx, http.MethodPatch, "profiles", q, "", fields, nil)
}
