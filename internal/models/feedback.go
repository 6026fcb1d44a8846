package model

import "time"

// Feedback est une suggestion/retour posté par un utilisateur
type Feedback struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string   `json:"category"` // feature, bug, improvement, other
	Status   string   `json:"status"`   // open, planned, in_progress, done, declined
	Tags     []string `json:"tags,omitempty"`
	Upvotes  int      `json:"upvotes"`
	// UserVoted indique si l'utilisateur courant a déjà voté (lecture seule)
	UserVoted bool `json:"userVoted"`
	Author    *UserCreator `json:"author,omitempty"`
	DateFields
}

// FeedbackVote est le vote unique d'un utilisateur sur un feedback
type FeedbackVote struct {
	ID         string    `json:"id"`
	FeedbackID string    `json:"feedbackId"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
