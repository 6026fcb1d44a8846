package scanner

import (
	"database/sql"

	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/lib/pq"
)

// rowScanner est satisfait par pgx.Row et pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile.
// Colonnes attendues : id, name, email, role, avatar, goal, business_id,
// join_date, created_at, updated_at, created_by, updated_by
func ScanUserProfile(scanner rowScanner) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, goal sql.NullString
	var updatedBy sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &avatar,
		&goal, &user.BusinessID,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
		&user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Goal = utils.NullStringToString(goal)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}

// ScanExercise scanne une ligne SQL vers un Exercise.
// Colonnes attendues : id, business_id, name, description, muscle_group,
// category, difficulty, video_url, image_url, created_at, updated_at, created_by
func ScanExercise(scanner rowScanner) (*model.Exercise, error) {
	var ex model.Exercise
	var description, videoURL, imageURL sql.NullString

	err := scanner.Scan(
		&ex.ID, &ex.BusinessID, &ex.Name, &description, &ex.MuscleGroup,
		&ex.Category, &ex.Difficulty, &videoURL, &imageURL,
		&ex.CreatedAt, &ex.UpdatedAt, &ex.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	ex.Description = utils.NullStringToString(description)
	ex.VideoURL = utils.NullStringToString(videoURL)
	ex.ImageURL = utils.NullStringToString(imageURL)

	return &ex, nil
}

// ScanWorkout scanne une ligne SQL vers un Workout (sans les exercices).
// Colonnes attendues : id, business_id, name, description, difficulty,
// created_at, updated_at, created_by
func ScanWorkout(scanner rowScanner) (*model.Workout, error) {
	var w model.Workout
	var description sql.NullString

	err := scanner.Scan(
		&w.ID, &w.BusinessID, &w.Name, &description, &w.Difficulty,
		&w.CreatedAt, &w.UpdatedAt, &w.CreatedBy,
	)
	if err != nil {
		return nil, err
	}

	w.Description = utils.NullStringToString(description)

	return &w, nil
}

// ScanWorkoutExercise scanne une ligne SQL vers un WorkoutExercise
// (jointure avec exercises pour le nom).
// Colonnes attendues : id, workout_id, exercise_id, exercise_name,
// sets, reps, rest_seconds, position
func ScanWorkoutExercise(scanner rowScanner) (*model.WorkoutExercise, error) {
	var we model.WorkoutExercise

	err := scanner.Scan(
		&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseName,
		&we.Sets, &we.Reps, &we.RestSeconds, &we.Position,
	)
	if err != nil {
		return nil, err
	}

	return &we, nil
}

// ScanFeedback scanne une ligne SQL vers un Feedback avec pq.Array pour les tags.
// Colonnes attendues : id, user_id, title, body, category, status, tags,
// upvotes, created_at, updated_at, author_name, author_avatar
func ScanFeedback(scanner rowScanner) (*model.Feedback, error) {
	var f model.Feedback
	var authorName sql.NullString
	var authorAvatar sql.NullString

	err := scanner.Scan(
		&f.ID, &f.UserID, &f.Title, &f.Body, &f.Category, &f.Status,
		pq.Array(&f.Tags), &f.Upvotes,
		&f.CreatedAt, &f.UpdatedAt,
		&authorName, &authorAvatar,
	)
	if err != nil {
		return nil, err
	}

	if authorName.Valid {
		f.Author = &model.UserCreator{
			ID:     f.UserID,
			Name:   authorName.String,
			Avatar: utils.NullStringToString(authorAvatar),
		}
	}

	return &f, nil
}

// ScanPlan scanne une ligne SQL vers un Plan.
// Colonnes attendues : id, business_id, name, description, price_cents,
// currency, interval, is_active, created_at, updated_at
func ScanPlan(scanner rowScanner) (*model.Plan, error) {
	var p model.Plan
	var description sql.NullString

	err := scanner.Scan(
		&p.ID, &p.BusinessID, &p.Name, &description, &p.PriceCents,
		&p.Currency, &p.Interval, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = utils.NullStringToString(description)

	return &p, nil
}

// ScanSubscription scanne une ligne SQL vers une Subscription.
// Colonnes attendues : id, plan_id, user_id, business_id, status,
// payment_ref, started_at, canceled_at
func ScanSubscription(scanner rowScanner) (*model.Subscription, error) {
	var s model.Subscription
	var paymentRef sql.NullString
	var canceledAt sql.NullTime

	err := scanner.Scan(
		&s.ID, &s.PlanID, &s.UserID, &s.BusinessID, &s.Status,
		&paymentRef, &s.StartedAt, &canceledAt,
	)
	if err != nil {
		return nil, err
	}

	s.PaymentRef = utils.NullStringToString(paymentRef)
	s.CanceledAt = utils.NullTimeToPointer(canceledAt)

	return &s, nil
}
