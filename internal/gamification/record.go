// Package gamification centralise les règles de points, niveaux, streaks et
// achievements. Toutes les règles sont des fonctions pures ; seule
// l'orchestration (Store) touche à la persistance.
package gamification

import "time"

// Record est l'état de gamification d'un utilisateur (une ligne par user_id)
type Record struct {
	UserID            string     `json:"userId"`
	Points            int        `json:"points"`
	Level             int        `json:"level"`
	StreakDays        int        `json:"streakDays"`
	LongestStreak     int        `json:"longestStreak"`
	WorkoutsCompleted int        `json:"workoutsCompleted"`
	LastActivityDate  *time.Time `json:"lastActivityDate,omitempty"`
	Achievements      []string   `json:"achievements"`
	Badges            []string   `json:"badges"`
}

// NewRecord construit l'état par défaut d'un utilisateur sans activité
func NewRecord(userID string) *Record {
	return &Record{
		UserID:       userID,
		Points:       0,
		Level:        1,
		Achievements: []string{},
		Badges:       []string{},
	}
}

// Snapshot est la vue immuable des métriques utilisées par les règles
type Snapshot struct {
	Points            int
	StreakDays        int
	LongestStreak     int
	WorkoutsCompleted int
}

func (r *Record) snapshot() Snapshot {
	return Snapshot{
		Points:            r.Points,
		StreakDays:        r.StreakDays,
		LongestStreak:     r.LongestStreak,
		WorkoutsCompleted: r.WorkoutsCompleted,
	}
}

func (r *Record) hasAchievement(id string) bool {
	for _, a := range r.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (r *Record) hasBadge(id string) bool {
	for _, b := range r.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// clone retourne une copie indépendante (les repos ne partagent jamais
// leurs pointeurs internes avec l'appelant)
func (r *Record) clone() *Record {
	c := *r
	if r.LastActivityDate != nil {
		t := *r.LastActivityDate
		c.LastActivityDate = &t
	}
	c.Achievements = append([]string{}, r.Achievements...)
	c.Badges = append([]string{}, r.Badges...)
	return &c
}
