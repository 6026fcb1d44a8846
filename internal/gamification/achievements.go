package gamification

// Metric identifie la métrique observée par une règle de déblocage
type Metric string

const (
	MetricPoints        Metric = "points"
	MetricStreak        Metric = "streak_days"
	MetricLongestStreak Metric = "longest_streak"
	MetricWorkouts      Metric = "workouts_completed"
)

// Rule est une règle de seuil : franchir Threshold sur Metric débloque
// l'achievement et/ou le badge associé. Table plate évaluée uniformément,
// pas de branchement par catégorie.
type Rule struct {
	Metric        Metric
	Threshold     int
	AchievementID string
	BadgeID       string
}

// Rules est la table statique des seuils. Les métadonnées d'affichage
// (nom, icône...) vivent dans le catalogue en base, pas ici.
var Rules = []Rule{
	{Metric: MetricWorkouts, Threshold: 1, AchievementID: "first_workout"},
	{Metric: MetricWorkouts, Threshold: 10, AchievementID: "workouts_10"},
	{Metric: MetricWorkouts, Threshold: 50, AchievementID: "workouts_50", BadgeID: "regular"},
	{Metric: MetricWorkouts, Threshold: 100, AchievementID: "workouts_100", BadgeID: "machine"},

	{Metric: MetricStreak, Threshold: 3, AchievementID: "streak_3"},
	{Metric: MetricStreak, Threshold: 7, AchievementID: "streak_7", BadgeID: "on_fire"},
	{Metric: MetricStreak, Threshold: 30, AchievementID: "streak_30", BadgeID: "unstoppable"},

	{Metric: MetricLongestStreak, Threshold: 14, AchievementID: "longest_streak_14"},

	{Metric: MetricPoints, Threshold: 500, AchievementID: "points_500"},
	{Metric: MetricPoints, Threshold: 1000, AchievementID: "points_1000"},
	{Metric: MetricPoints, Threshold: 5000, AchievementID: "points_5000", BadgeID: "legend"},
}

// Unlocks contient les identifiants nouvellement débloqués par une évaluation
type Unlocks struct {
	Achievements []string
	Badges       []string
}

// EvaluateUnlocks compare deux snapshots et retourne ce qui vient d'être
// débloqué. Détection de franchissement uniquement : before < seuil <= after,
// donc jamais de ré-attribution sur les activités suivantes.
func EvaluateUnlocks(before, after Snapshot) Unlocks {
	unlocks := Unlocks{Achievements: []string{}, Badges: []string{}}

	for _, rule := range Rules {
		if metricValue(after, rule.Metric) < rule.Threshold {
			continue
		}
		if metricValue(before, rule.Metric) >= rule.Threshold {
			continue // déjà franchi avant cette activité
		}
		if rule.AchievementID != "" {
			unlocks.Achievements = append(unlocks.Achievements, rule.AchievementID)
		}
		if rule.BadgeID != "" {
			unlocks.Badges = append(unlocks.Badges, rule.BadgeID)
		}
	}

	return unlocks
}

func metricValue(s Snapshot, m Metric) int {
	switch m {
	case MetricPoints:
		return s.Points
	case MetricStreak:
		return s.StreakDays
	case MetricLongestStreak:
		return s.LongestStreak
	case MetricWorkouts:
		return s.WorkoutsCompleted
	default:
		return 0
	}
}
