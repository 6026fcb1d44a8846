package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateUnlocksCrossingEdge(t *testing.T) {
	before := Snapshot{Points: 400, WorkoutsCompleted: 4, StreakDays: 2, LongestStreak: 2}
	after := Snapshot{Points: 500, WorkoutsCompleted: 5, StreakDays: 3, LongestStreak: 3}

	unlocks := EvaluateUnlocks(before, after)

	assert.Contains(t, unlocks.Achievements, "points_500")
	assert.Contains(t, unlocks.Achievements, "streak_3")
	assert.NotContains(t, unlocks.Achievements, "first_workout")
}

func TestEvaluateUnlocksDoesNotRetrigger(t *testing.T) {
	// Seuil points>=500 déjà franchi : passer de 600 à 700 ne doit rien
	// ré-attribuer
	before := Snapshot{Points: 600, WorkoutsCompleted: 6, StreakDays: 1, LongestStreak: 3}
	after := Snapshot{Points: 700, WorkoutsCompleted: 7, StreakDays: 2, LongestStreak: 3}

	unlocks := EvaluateUnlocks(before, after)

	assert.Empty(t, unlocks.Achievements)
	assert.Empty(t, unlocks.Badges)
}

func TestEvaluateUnlocksFirstWorkout(t *testing.T) {
	before := Snapshot{}
	after := Snapshot{Points: 100, WorkoutsCompleted: 1, StreakDays: 1, LongestStreak: 1}

	unlocks := EvaluateUnlocks(before, after)

	assert.Equal(t, []string{"first_workout"}, unlocks.Achievements)
	assert.Empty(t, unlocks.Badges)
}

func TestEvaluateUnlocksBadges(t *testing.T) {
	before := Snapshot{Points: 4900, WorkoutsCompleted: 49, StreakDays: 6, LongestStreak: 6}
	after := Snapshot{Points: 5000, WorkoutsCompleted: 50, StreakDays: 7, LongestStreak: 7}

	unlocks := EvaluateUnlocks(before, after)

	assert.Contains(t, unlocks.Achievements, "points_5000")
	assert.Contains(t, unlocks.Achievements, "workouts_50")
	assert.Contains(t, unlocks.Achievements, "streak_7")
	assert.Contains(t, unlocks.Badges, "legend")
	assert.Contains(t, unlocks.Badges, "regular")
	assert.Contains(t, unlocks.Badges, "on_fire")
}

func TestEvaluateUnlocksMultipleThresholdsInOneJump(t *testing.T) {
	// Un saut qui franchit deux paliers de points débloque les deux
	before := Snapshot{Points: 400}
	after := Snapshot{Points: 1200}

	unlocks := EvaluateUnlocks(before, after)

	assert.Contains(t, unlocks.Achievements, "points_500")
	assert.Contains(t, unlocks.Achievements, "points_1000")
}
