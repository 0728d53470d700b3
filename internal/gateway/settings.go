package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteSettings struct {
	UserID               string   `json:"user_id"`
	ExerciseList         []string `json:"exercise_list"`
	DailyResetHour       int      `json:"daily_reset_hour"`
	NotificationsEnabled bool     `json:"notifications_enabled"`
	DarkMode             bool     `json:"dark_mode"`
}

func settingsToRemote(userID string, s model.AppSettings) remoteSettings {
	return remoteSettings{
		UserID:               userID,
		ExerciseList:         s.ExerciseList,
		DailyResetHour:       s.DailyResetHour,
		NotificationsEnabled: s.NotificationsEnabled,
		DarkMode:             s.DarkMode,
	}
}

func (r remoteSettings) toLocal() model.AppSettings {
	return model.AppSettings{
		ExerciseList:         r.ExerciseList,
		DailyResetHour:       r.DailyResetHour,
		NotificationsEnabled: r.NotificationsEnabled,
		DarkMode:             r.DarkMode,
	}
}

// FetchSettings returns the user's settings row, or nil when none exists.
func (c *Client) FetchSettings(ctx context.Context, userID string) (*model.AppSettings, error) {
	if userID == "" {
		return nil, nil
	}
	var rows []remoteSettings
	q := url.Values{"user_id": {eq(userID)}}
	if err := c.do(ctx, http.MethodGet, "user_settings", q, "", nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	s := rows[0].toLocal()
	return &s, nil
}

// UpsertSettings writes the full settings row keyed by user id.
func (c *Client) UpsertSettings(ctx context.Context, userID string, s model.AppSettings) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "user_settings", nil,
		"resolution=merge-duplicates", settingsToRemote(userID, s), nil)
}
