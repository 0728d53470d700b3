package model

// Patch structs carry partial updates. A nil field means "leave untouched
// remotely"; the gateway translates only assigned fields.

type ProfilePatch struct {
	XP           *int
	Level        *int
	CaloriesGoal *int
	ProteinGoal  *int
	CarbsGoal    *int
	FatsGoal     *int
	Name         *string
	Rank         *int
	Email        *string
	Avatar       *string
}

type TaskPatch struct {
	Title       *string
	DueDate     *string
	Completed   *bool
	XPReward    *int
	CompletedAt *string // RFC 3339, empty string clears
}

type FriendPatch struct {
	Name       *string
	XP         *int
	Level      *int
	Tier       *string
	Avatar     *string
	LastActive *string // RFC 3339
}

type SettingsPatch struct {
	ExerciseList         *[]string
	DailyResetHour       *int
	NotificationsEnabled *bool
	DarkMode             *bool
}

type ExercisePatch struct {
	Name          *string
	Sets          *int
	Reps          *int
	CompletedSets *int
	Weight        *float64
	Notes         *string
}
