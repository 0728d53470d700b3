package model

import "time"

// UserProfile is the gamified profile for the signed-in (or anonymous) user.
// Level is always derived from XP; see LevelForXP.
type UserProfile struct {
	XP           int    `json:"xp"`
	Level        int    `json:"level"`
	CaloriesGoal int    `json:"caloriesGoal"`
	ProteinGoal  int    `json:"proteinGoal"`
	CarbsGoal    int    `json:"carbsGoal"`
	FatsGoal     int    `json:"fatsGoal"`
	Name         string `json:"name"`
	Rank         int    `json:"rank"`
	Email        string `json:"email,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
}

// Task is a checklist item. Completing it grants XPReward once per
// false→true transition.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	DueDate     string     `json:"dueDate"`
	Completed   bool       `json:"completed"`
	XPReward    int        `json:"xpReward"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is immutable once logged except by deletion.
type Meal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fats      int       `json:"fats"`
	Timestamp time.Time `json:"timestamp"`
	MealType  MealType  `json:"mealType,omitempty"`
}

// Exercise lives only inside an active workout composition; it is never
// persisted to the backend on its own, only as part of a saved session.
type Exercise struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Sets          int     `json:"sets"`
	Reps          int     `json:"reps"`
	CompletedSets int     `json:"completedSets"`
	Weight        float64 `json:"weight,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// WorkoutSession is created atomically with its exercises when a workout is
// finalized.
type WorkoutSession struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Duration  int        `json:"duration"` // minutes
	TotalXP   int        `json:"totalXp"`
	Notes     string     `json:"notes,omitempty"`
	Exercises []Exercise `json:"exercises"`
}

// Friend is a leaderboard entry, distinct from any richer follow graph.
type Friend struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	XP         int        `json:"xp"`
	Level      int        `json:"level"`
	Tier       string     `json:"tier"`
	Avatar     string     `json:"avatar,omitempty"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

// AppSettings are user preferences synced alongside the profile.
type AppSettings struct {
	ExerciseList         []string `json:"exerciseList"`
	DailyResetHour       int      `json:"dailyResetHour"`
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	DarkMode             bool     `json:"darkMode"`
}

// DefaultProfile is the state of a fresh or purged profile slot.
func DefaultProfile() UserProfile {
	return UserProfile{
		XP:           0,
		Level:        1,
		CaloriesGoal: 2000,
		ProteinGoal:  150,
		CarbsGoal:    250,
		FatsGoal:     65,
		Name:         "Athlete",
		Rank:         0,
	}
}

// DefaultSettings is the state of a fresh or purged settings slot.
func DefaultSettings() AppSettings {
	return AppSettings{
		ExerciseList: []string{
			"Bench Press", "Squat", "Deadlift", "Overhead Press",
			"Barbell Row", "Pull Up", "Push Up", "Plank",
		},
		DailyResetHour:       0,
		NotificationsEnabled: true,
		DarkMode:             true,
	}
}
