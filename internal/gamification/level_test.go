package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2500, 3},
		{10000, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelOf(tt.points), "points=%d", tt.points)
	}
}

func TestLevelOfNegativePointsClampsToOne(t *testing.T) {
	assert.Equal(t, 1, LevelOf(-50))
}

func TestAddPoints(t *testing.T) {
	assert.Equal(t, WorkoutAward, AddPoints(0, WorkoutAward))
	assert.Equal(t, 1050, AddPoints(950, 100))
}
