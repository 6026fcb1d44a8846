package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Repository est le contrat de persistance du moteur. UpdateRecord doit
// garantir l'exclusion mutuelle par user_id et une écriture tout-ou-rien.
type Repository interface {
	// Get retourne le record d'un utilisateur, ErrNotFound s'il n'existe pas
	Get(ctx context.Context, userID string) (*Record, error)

	// UpdateRecord charge (ou crée par défaut) le record, applique apply
	// puis persiste le tout en une écriture atomique. Si apply retourne une
	// erreur, rien n'est écrit.
	UpdateRecord(ctx context.Context, userID string, apply func(*Record) error) (*Record, error)

	// TopByPoints retourne les records triés par points décroissants
	// (ordre stable : user_id croissant à points égaux)
	TopByPoints(ctx context.Context, limit int) ([]*Record, error)
}

// Store orchestre une activité qualifiante : streak, points, niveau,
// compteur de séances, achievements, puis une seule écriture.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// ActivityResult est le résumé retourné au handler de complétion de séance
type ActivityResult struct {
	Record          *Record  `json:"record"`
	StreakContinued bool     `json:"streakContinued"`
	LeveledUp       bool     `json:"leveledUp"`
	PointsAwarded   int      `json:"pointsAwarded"`
	NewAchievements []string `json:"newAchievements"`
	NewBadges       []string `json:"newBadges"`
}

// RecordActivity enregistre une séance complétée pour userID à activityAt.
// Création paresseuse du record à la première activité. L'état passe
// Uninitialized -> Active puis reste Active ; aucun autre cycle de vie.
func (s *Store) RecordActivity(ctx context.Context, userID string, activityAt time.Time) (*ActivityResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}
	if activityAt.IsZero() {
		return nil, fmt.Errorf("%w: zero activity timestamp", ErrInvalidInput)
	}

	result := &ActivityResult{PointsAwarded: WorkoutAward}

	record, err := s.repo.UpdateRecord(ctx, userID, func(rec *Record) error {
		// Le temps ne recule pas : un timestamp antérieur à la dernière
		// activité est un doublon mal daté, pas une activité valide
		if rec.LastActivityDate != nil && activityAt.Before(*rec.LastActivityDate) {
			return fmt.Errorf("%w: activity timestamp before last activity", ErrInvalidInput)
		}

		before := rec.snapshot()

		// 1. Streak
		streak := EvaluateStreak(rec.LastActivityDate, activityAt, rec.StreakDays)
		rec.StreakDays = streak.NewStreak
		if rec.StreakDays > rec.LongestStreak {
			rec.LongestStreak = rec.StreakDays
		}
		ts := activityAt
		rec.LastActivityDate = &ts

		// 2. Points puis niveau (le niveau n'est jamais stocké indépendamment
		// de la fonction : toujours recalculé ici)
		previousLevel := LevelOf(before.Points)
		rec.Points = AddPoints(rec.Points, WorkoutAward)
		rec.Level = LevelOf(rec.Points)

		// 3. Compteur de séances
		rec.WorkoutsCompleted++

		// 4. Achievements/badges sur franchissement de seuil
		unlocks := EvaluateUnlocks(before, rec.snapshot())
		for _, id := range unlocks.Achievements {
			if !rec.hasAchievement(id) {
				rec.Achievements = append(rec.Achievements, id)
			}
		}
		for _, id := range unlocks.Badges {
			if !rec.hasBadge(id) {
				rec.Badges = append(rec.Badges, id)
			}
		}

		result.StreakContinued = streak.Continued
		result.LeveledUp = rec.Level > previousLevel
		result.NewAchievements = unlocks.Achievements
		result.NewBadges = unlocks.Badges
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Record = record
	return result, nil
}

// Record retourne l'état de gamification d'un utilisateur.
// Un utilisateur sans activité reçoit le record par défaut (pas d'erreur).
func (s *Store) Record(ctx context.Context, userID string) (*Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}

	record, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewRecord(userID), nil
		}
		return nil, err
	}
	return record, nil
}

// RankedRecord est une ligne de classement produite par Leaderboard
type RankedRecord struct {
	*Record
	Rank int `json:"rank"`
}

// LeaderboardMaxSize borne le top-N du classement
const LeaderboardMaxSize = 100

// Leaderboard retourne le top-N par points avec un rang dense démarrant à 1 :
// les ex aequo partagent le rang et le rang suivant n'est pas sauté.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]RankedRecord, error) {
	if limit <= 0 || limit > LeaderboardMaxSize {
		limit = LeaderboardMaxSize
	}

	records, err := s.repo.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedRecord, 0, len(records))
	rank := 0
	previousPoints := -1
	for _, rec := range records {
		if rec.Points != previousPoints {
			rank++
			previousPoints = rec.Points
		}
		ranked = append(ranked, RankedRecord{Record: rec, Rank: rank})
	}

	return ranked, nil
}
