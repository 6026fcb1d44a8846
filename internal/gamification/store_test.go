package gamification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *MemoryRepository) {
	repo := NewMemoryRepository()
	return NewStore(repo), repo
}

func TestRecordActivityFirstWorkout(t *testing.T) {
	store, _ := newTestStore()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	res, err := store.RecordActivity(context.Background(), "user-1", now)
	require.NoError(t, err)

	rec := res.Record
	assert.Equal(t, 100, rec.Points)
	assert.Equal(t, 1, rec.Level)
	assert.Equal(t, 1, rec.StreakDays)
	assert.Equal(t, 1, rec.LongestStreak)
	assert.Equal(t, 1, rec.WorkoutsCompleted)
	require.NotNil(t, rec.LastActivityDate)
	assert.Equal(t, now, *rec.LastActivityDate)
	assert.Contains(t, rec.Achievements, "first_workout")
	assert.False(t, res.StreakContinued)
	assert.Contains(t, res.NewAchievements, "first_workout")
}

func TestRecordActivitySequence(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Première séance
	_, err := store.RecordActivity(ctx, "user-1", start)
	require.NoError(t, err)

	// Deuxième séance 10h plus tard : le streak continue
	second := start.Add(10 * time.Hour)
	res, err := store.RecordActivity(ctx, "user-1", second)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Record.StreakDays)
	assert.Equal(t, 2, res.Record.LongestStreak)
	assert.Equal(t, 200, res.Record.Points)
	assert.Equal(t, 2, res.Record.WorkoutsCompleted)
	assert.True(t, res.StreakContinued)

	// Troisième séance 48h après la deuxième : reset du streak,
	// le plus long streak est conservé
	third := second.Add(48 * time.Hour)
	res, err = store.RecordActivity(ctx, "user-1", third)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Record.StreakDays)
	assert.Equal(t, 2, res.Record.LongestStreak)
	assert.Equal(t, 300, res.Record.Points)
	assert.False(t, res.StreakContinued)
}

func TestRecordActivityLongestStreakNeverDecreases(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	longest := 0
	for i := 0; i < 12; i++ {
		// Alternance de gaps : certains continuent, d'autres cassent
		gap := 20 * time.Hour
		if i%5 == 4 {
			gap = 30 * time.Hour
		}
		now = now.Add(gap)

		res, err := store.RecordActivity(ctx, "user-1", now)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, res.Record.LongestStreak, res.Record.StreakDays)
		assert.GreaterOrEqual(t, res.Record.LongestStreak, longest)
		longest = res.Record.LongestStreak
	}
}

func TestRecordActivityLevelUp(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Utilisateur à 950 points : la prochaine séance doit passer niveau 2
	_, err := repo.UpdateRecord(ctx, "user-1", func(rec *Record) error {
		rec.Points = 950
		rec.Level = LevelOf(rec.Points)
		rec.WorkoutsCompleted = 9
		return nil
	})
	require.NoError(t, err)

	res, err := store.RecordActivity(ctx, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, 1050, res.Record.Points)
	assert.Equal(t, 2, res.Record.Level)
	assert.True(t, res.LeveledUp)
	assert.Contains(t, res.NewAchievements, "points_1000")
}

func TestRecordActivityInvalidInput(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	_, err := store.RecordActivity(ctx, "", now)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = store.RecordActivity(ctx, "user-1", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Timestamp antérieur à la dernière activité : rejeté, état inchangé
	_, err = store.RecordActivity(ctx, "user-1", now)
	require.NoError(t, err)
	_, err = store.RecordActivity(ctx, "user-1", now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInput)

	rec, err := store.Record(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Points)
	assert.Equal(t, 1, rec.WorkoutsCompleted)
}

func TestRecordReadIsIdempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.RecordActivity(ctx, "user-1", time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	first, err := store.Record(ctx, "user-1")
	require.NoError(t, err)
	second, err := store.Record(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecordDefaultsForUnknownUser(t *testing.T) {
	store, _ := newTestStore()

	rec, err := store.Record(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Equal(t, 0, rec.Points)
	assert.Equal(t, 1, rec.Level)
	assert.Equal(t, 0, rec.StreakDays)
	assert.Empty(t, rec.Achievements)
}

// failingRepository simule une panne de stockage à l'écriture
type failingRepository struct {
	*MemoryRepository
}

func (r *failingRepository) UpdateRecord(ctx context.Context, userID string, apply func(*Record) error) (*Record, error) {
	return nil, fmt.Errorf("%w: connection refused", ErrStorage)
}

func TestRecordActivityStorageFailureLeavesNoPartialState(t *testing.T) {
	repo := &failingRepository{MemoryRepository: NewMemoryRepository()}
	store := NewStore(repo)

	_, err := store.RecordActivity(context.Background(), "user-1", time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage))

	// Aucune écriture partielle visible
	_, err = repo.MemoryRepository.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaderboardDenseRank(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	seed := map[string]int{
		"user-a": 500,
		"user-b": 300,
		"user-c": 500,
		"user-d": 100,
	}
	for id, points := range seed {
		p := points
		_, err := repo.UpdateRecord(ctx, id, func(rec *Record) error {
			rec.Points = p
			rec.Level = LevelOf(p)
			return nil
		})
		require.NoError(t, err)
	}

	ranked, err := store.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	// Ex aequo à 500 points : rang 1 partagé, le suivant prend le rang 2
	assert.Equal(t, "user-a", ranked[0].UserID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "user-c", ranked[1].UserID)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, "user-b", ranked[2].UserID)
	assert.Equal(t, 2, ranked[2].Rank)
	assert.Equal(t, "user-d", ranked[3].UserID)
	assert.Equal(t, 3, ranked[3].Rank)
}

func TestLeaderboardTruncatesToLimit(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("user-%d", i)
		p := (i + 1) * 100
		_, err := repo.UpdateRecord(ctx, id, func(rec *Record) error {
			rec.Points = p
			return nil
		})
		require.NoError(t, err)
	}

	ranked, err := store.Leaderboard(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
	assert.Equal(t, 500, ranked[0].Points)
}
