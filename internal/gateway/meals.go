package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sadopc/fitsync/internal/model"
)

type remoteMeal struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Carbs     int    `json:"carbs"`
	Fats      int    `json:"fats"`
	LoggedAt  string `json:"logged_at"`
	MealType  string `json:"meal_type,omitempty"`
}

func mealToRemote(userID string, m model.Meal) remoteMeal {
	return remoteMeal{
		ID:       m.ID,
		UserID:   userID,
		Name:     m.Name,
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fats:     m.Fats,
		LoggedAt: formatTime(m.Timestamp),
		MealType: string(m.MealType),
	}
}

func (r remoteMeal) toLocal() model.Meal {
	return model.Meal{
		ID:        r.ID,
		Name:      r.Name,
		Calories:  r.Calories,
		Protein:   r.Protein,
		Carbs:     r.Carbs,
		Fats:      r.Fats,
		Timestamp: parseTime(r.LoggedAt),
		MealType:  model.MealType(r.MealType),
	}
}

// FetchMeals returns all meals owned by the user, oldest first.
func (c *Client) FetchMeals(ctx context.Context, userID string) ([]model.Meal, error) {
	if userID == "" {
		return []model.Meal{}, nil
	}
	var rows []remoteMeal
	q := url.Values{"user_id": {eq(userID)}, "order": {"logged_at.asc"}}
	if err := c.do(ctx, http.MethodGet, "meals", q, "", nil, &rows); err != nil {
		return nil, err
	}
	meals := make([]model.Meal, 0, len(rows))
	for _, r := range rows {
		meals = append(meals, r.toLocal())
	}
	return meals, nil
}

func (c *Client) CreateMeal(ctx context.Context, userID string, m model.Meal) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, http.MethodPost, "meals", nil, "", mealToRemote(userID, m), nil)
}

func (c *Client) DeleteMeal(ctx context.Context, userID, mealID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	q := url.Values{"id": {eq(mealID)}, "user_id": {eq(userID)}}
	return c.do(ctx, http.MethodDelete, "meals", q, "", nil, nil)
}
