package gamification

import "time"

// StreakWindow est la fenêtre glissante de continuité d'un streak.
// Deux activités espacées d'au plus 24h (borne incluse) sont consécutives.
// C'est volontairement une fenêtre glissante et non un jour calendaire :
// 23h puis 6h le lendemain continue le streak, 9h puis 10h le surlendemain
// le casse.
const StreakWindow = 24 * time.Hour

// StreakResult est le verdict de l'évaluateur de streak
type StreakResult struct {
	Continued bool
	NewStreak int
}

// EvaluateStreak décide si une activité continue, démarre ou casse un streak.
// Fonction pure : aucune lecture d'horloge ni de base.
func EvaluateStreak(lastActivity *time.Time, now time.Time, currentStreak int) StreakResult {
	// Première activité de l'utilisateur
	if lastActivity == nil {
		return StreakResult{Continued: false, NewStreak: 1}
	}

	gap := now.Sub(*lastActivity)
	if gap <= StreakWindow {
		return StreakResult{Continued: true, NewStreak: currentStreak + 1}
	}

	return StreakResult{Continued: false, NewStreak: 1}
}
