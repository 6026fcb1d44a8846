package model

// Exercise est une entrée de la bibliothèque d'exercices d'une salle
type Exercise struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MuscleGroup string `json:"muscleGroup"` // chest, back, legs, shoulders, arms, core, full_body
	Category    string `json:"category"`    // strength, cardio, mobility
	Difficulty  string `json:"difficulty"`  // BEGINNER, INTERMEDIATE, ADVANCED
	VideoURL    string `json:"videoUrl,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	DateFields
}
