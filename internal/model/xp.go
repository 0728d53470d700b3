package model

// XPPerLevel is the flat XP cost of each level.
const XPPerLevel = 1000

// XP bonuses for the actions that funnel through the grant primitive.
const (
	MealXPBonus     = 50
	ExerciseXPBonus = 25
	WorkoutBaseXP   = 100
)

// LevelForXP derives the level from a total XP amount. Every XP mutation
// must recompute the level through this function; levels are never set
// independently.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// TierForLevel maps a level onto a leaderboard tier band.
func TierForLevel(level int) string {
	switch {
	case level < 5:
		return "Bronze"
	case level < 10:
		return "Silver"
	case level < 20:
		return "Gold"
	case level < 35:
		return "Platinum"
	default:
		return "Diamond"
	}
}
