package model

import "time"

// Workout est une séance construite par une salle/coach
type Workout struct {
	ID          string            `json:"id"`
	BusinessID  string            `json:"businessId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Difficulty  string            `json:"difficulty"` // BEGINNER, INTERMEDIATE, ADVANCED
	Exercises   []WorkoutExercise `json:"exercises,omitempty"`
	DateFields
}

// WorkoutExercise est un exercice positionné dans une séance
type WorkoutExercise struct {
	ID           string `json:"id"`
	WorkoutID    string `json:"workoutId"`
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName,omitempty"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	RestSeconds  int    `json:"restSeconds"`
	Position     int    `json:"position"`
}

// WorkoutCompletion est l'enregistrement d'une séance terminée par un athlète
type WorkoutCompletion struct {
	ID          string    `json:"id"`
	WorkoutID   string    `json:"workoutId"`
	UserID      string    `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
