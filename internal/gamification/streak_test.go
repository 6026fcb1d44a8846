package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateStreakFirstActivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	res := EvaluateStreak(nil, now, 0)

	assert.False(t, res.Continued)
	assert.Equal(t, 1, res.NewStreak)
}

func TestEvaluateStreakWindow(t *testing.T) {
	last := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		gap       time.Duration
		current   int
		continued bool
		newStreak int
	}{
		{"ten hours later continues", 10 * time.Hour, 1, true, 2},
		{"just under a day continues", 23*time.Hour + 59*time.Minute, 4, true, 5},
		{"exactly one day continues", 24 * time.Hour, 2, true, 3},
		{"one second past the window resets", 24*time.Hour + time.Second, 6, false, 1},
		{"25 hours resets", 25 * time.Hour, 9, false, 1},
		{"48 hours resets", 48 * time.Hour, 2, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvaluateStreak(&last, last.Add(tt.gap), tt.current)
			assert.Equal(t, tt.continued, res.Continued)
			assert.Equal(t, tt.newStreak, res.NewStreak)
		})
	}
}

func TestEvaluateStreakCrossesCalendarDays(t *testing.T) {
	// 23h puis 6h le lendemain : 7h d'écart, le streak continue même si
	// le jour calendaire a changé (fenêtre glissante, pas de minuit)
	last := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)

	res := EvaluateStreak(&last, now, 3)

	assert.True(t, res.Continued)
	assert.Equal(t, 4, res.NewStreak)
}
