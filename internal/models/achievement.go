package model

// AchievementInfo est une entrée du catalogue d'achievements/badges.
// Le moteur de gamification ne stocke que les identifiants ; les métadonnées
// d'affichage vivent ici.
type AchievementInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category"` // points, streak, workouts
	Kind        string `json:"kind"`     // achievement, badge
}

// AchievementWithStatus est une entrée du catalogue enrichie de l'état
// de déblocage pour un utilisateur donné
type AchievementWithStatus struct {
	AchievementInfo
	Unlocked bool `json:"unlocked"`
}
