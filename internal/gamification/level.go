package gamification

const (
	// WorkoutAward est le nombre de points attribués par séance complétée
	WorkoutAward = 100

	// LevelThreshold est le nombre de points par niveau
	LevelThreshold = 1000
)

// AddPoints applique une récompense au total de points (jamais décrémenté
// par ce chemin ; les corrections admin passent ailleurs)
func AddPoints(currentPoints, award int) int {
	return currentPoints + award
}

// LevelOf dérive le niveau du total de points : palier fixe de 1000 points.
// LevelOf(0) = 1, LevelOf(999) = 1, LevelOf(1000) = 2.
func LevelOf(points int) int {
	if points < 0 {
		return 1
	}
	return points/LevelThreshold + 1
}
