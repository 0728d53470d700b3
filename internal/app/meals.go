package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/fitsync/internal/model"
)

// AddMealInput is what the UI supplies when logging a meal.
type AddMealInput struct {
	Name     string
	Calories int
	Protein  int
	Carbs    int
	Fats     int
	MealType model.MealType
}

// AddMeal logs a meal and grants the fixed meal bonus, independent of the
// meal's nutrition values.
func (a *App) AddMeal(in AddMealInput) (model.Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Meal{}, fmt.Errorf("meal name is required")
	}
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return model.Meal{}, fmt.Errorf("meal macros must be non-negative")
	}
	switch in.MealType {
	case "", model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack:
	default:
		return model.Meal{}, fmt.Errorf("unknown meal type %q", in.MealType)
	}

	m := model.Meal{
		ID:        uuid.NewString(),
		Name:      name,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fats:      in.Fats,
		Timestamp: time.Now().UTC(),
		MealType:  in.MealType,
	}

	a.mu.Lock()
	a.meals = append(a.meals, m)
	a.persist(keyMeals, a.meals)
	granted := a.grantXPLocked(model.MealXPBonus)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("create meal", uid, func(ctx context.Context) error {
		return a.gw.CreateMeal(ctx, uid, m)
	})
	a.pushProfileXP(uid, granted)
	return m, nil
}

// DeleteMeal removes a logged meal. The meal bonus is not clawed back.
func (a *App) DeleteMeal(id string) error {
	a.mu.Lock()
	kept := a.meals[:0]
	found := false
	for _, m := range a.meals {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		a.mu.Unlock()
		return fmt.Errorf("meal %q not found", id)
	}
	a.meals = kept
	a.persist(keyMeals, a.meals)
	uid := a.userID
	a.mu.Unlock()

	a.remoteAsync("delete meal", uid, func(ctx context.Context) error {
		return a.gw.DeleteMeal(ctx, uid, id)
	})
	return nil
}
