package gamification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persiste les records dans gamification_records.
// L'exclusion mutuelle par utilisateur est assurée par un verrou de ligne
// (SELECT ... FOR UPDATE) dans une transaction : deux complétions
// simultanées du même athlète sont sérialisées par PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const recordColumns = `
	user_id, points, level, streak_days, longest_streak,
	workouts_completed, last_activity_date, achievements, badges`

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Record, error) {
	var rec Record
	err := r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM gamification_records
		WHERE user_id = $1
	`, userID).Scan(
		&rec.UserID, &rec.Points, &rec.Level, &rec.StreakDays, &rec.LongestStreak,
		&rec.WorkoutsCompleted, &rec.LastActivityDate, &rec.Achievements, &rec.Badges,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &rec, nil
}

func (r *PostgresRepository) UpdateRecord(ctx context.Context, userID string, apply func(*Record) error) (*Record, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer tx.Rollback(ctx)

	// Création paresseuse : les valeurs par défaut viennent du schéma.
	// À un doublon près, les deux appels concurrents retombent sur le même
	// verrou de ligne juste en dessous.
	_, err = tx.Exec(ctx, `
		INSERT INTO gamification_records(user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var rec Record
	err = tx.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM gamification_records
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(
		&rec.UserID, &rec.Points, &rec.Level, &rec.StreakDays, &rec.LongestStreak,
		&rec.WorkoutsCompleted, &rec.LastActivityDate, &rec.Achievements, &rec.Badges,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := apply(&rec); err != nil {
		// rollback implicite : rien n'a été écrit
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE gamification_records
		SET points = $2, level = $3, streak_days = $4, longest_streak = $5,
		    workouts_completed = $6, last_activity_date = $7,
		    achievements = $8, badges = $9, updated_at = NOW()
		WHERE user_id = $1
	`,
		userID, rec.Points, rec.Level, rec.StreakDays, rec.LongestStreak,
		rec.WorkoutsCompleted, rec.LastActivityDate, rec.Achievements, rec.Badges,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &rec, nil
}

func (r *PostgresRepository) TopByPoints(ctx context.Context, limit int) ([]*Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM gamification_records
		ORDER BY points DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.UserID, &rec.Points, &rec.Level, &rec.StreakDays, &rec.LongestStreak,
			&rec.WorkoutsCompleted, &rec.LastActivityDate, &rec.Achievements, &rec.Badges,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return records, nil
}
