package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/gamification"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/scanner"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/gorilla/mux"
)

const workoutColumns = `id, business_id, name, description, difficulty,
	created_at, updated_at, created_by`

type WorkoutExerciseRequest struct {
	ExerciseID  string `json:"exerciseId" validate:"required,uuid"`
	Sets        int    `json:"sets" validate:"required,min=1,max=50"`
	Reps        int    `json:"reps" validate:"required,min=1,max=500"`
	RestSeconds int    `json:"restSeconds" validate:"min=0,max=3600"`
}

type WorkoutRequest struct {
	Name        string                   `json:"name" validate:"required,min=2,max=150"`
	Description string                   `json:"description" validate:"max=2000"`
	Difficulty  string                   `json:"difficulty" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Exercises   []WorkoutExerciseRequest `json:"exercises" validate:"required,min=1,max=30,dive"`
}

// GetWorkouts liste les séances visibles (optionnellement filtrées par salle)
func GetWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE deleted_at IS NULL`
	args := []interface{}{}

	if businessID := r.URL.Query().Get("businessId"); businessID != "" {
		query += ` AND business_id=$1`
		args = append(args, businessID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workouts", err)
		return
	}
	defer rows.Close()

	workouts := []model.Workout{}
	for rows.Next() {
		wk, err := scanner.ScanWorkout(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan workout row", err)
			return
		}
		workouts = append(workouts, *wk)
	}

	utils.Success(w, workouts)
}

// GetWorkout retourne une séance avec ses exercices ordonnés
func GetWorkout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id=$1 AND deleted_at IS NULL`, id)
	workout, err := scanner.ScanWorkout(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "workout not found", err)
		return
	}

	exercises, err := loadWorkoutExercises(ctx, workout.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workout exercises", err)
		return
	}
	workout.Exercises = exercises

	utils.Success(w, workout)
}

// CreateWorkout crée une séance et ses exercices (business uniquement).
// Tout passe dans une transaction : séance + exercices, ou rien.
func CreateWorkout(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}

	var payload WorkoutRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO workouts(business_id, name, description, difficulty, created_at, updated_at, created_by)
		VALUES($1,$2,$3,$4,NOW(),NOW(),$1)
		RETURNING `+workoutColumns,
		user.ID, payload.Name, payload.Description, payload.Difficulty,
	)
	workout, err := scanner.ScanWorkout(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create workout", err)
		return
	}

	for position, ex := range payload.Exercises {
		_, err = tx.Exec(ctx, `
			INSERT INTO workout_exercises(workout_id, exercise_id, sets, reps, rest_seconds, position)
			VALUES($1,$2,$3,$4,$5,$6)`,
			workout.ID, ex.ExerciseID, ex.Sets, ex.Reps, ex.RestSeconds, position,
		)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "could not add exercise to workout (unknown exercise?)", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit workout", err)
		return
	}

	workout.Exercises, err = loadWorkoutExercises(ctx, workout.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workout exercises", err)
		return
	}

	utils.Success(w, workout)
}

// UpdateWorkout remplace les métadonnées et la liste d'exercices d'une séance
func UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	var payload WorkoutRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE workouts SET name=$3, description=$4, difficulty=$5, updated_at=NOW(), updated_by=$2
		WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL
		RETURNING `+workoutColumns,
		id, user.ID, payload.Name, payload.Description, payload.Difficulty,
	)
	workout, err := scanner.ScanWorkout(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "workout not found or not owned", err)
		return
	}

	// Remplacement complet de la liste d'exercices
	if _, err := tx.Exec(ctx, `DELETE FROM workout_exercises WHERE workout_id=$1`, workout.ID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not clear workout exercises", err)
		return
	}
	for position, ex := range payload.Exercises {
		_, err = tx.Exec(ctx, `
			INSERT INTO workout_exercises(workout_id, exercise_id, sets, reps, rest_seconds, position)
			VALUES($1,$2,$3,$4,$5,$6)`,
			workout.ID, ex.ExerciseID, ex.Sets, ex.Reps, ex.RestSeconds, position,
		)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "could not add exercise to workout (unknown exercise?)", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit workout update", err)
		return
	}

	workout.Exercises, err = loadWorkoutExercises(ctx, workout.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query workout exercises", err)
		return
	}

	utils.Success(w, workout)
}

// DeleteWorkout soft delete une séance de la salle
func DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	res, err := database.DB.Exec(ctx,
		`UPDATE workouts SET deleted_at=NOW(), deleted_by=$2
		 WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL`,
		id, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete workout", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "workout not found or not owned")
		return
	}

	utils.Message(w, "workout deleted")
}

type CompleteWorkoutRequest struct {
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes" validate:"max=1000"`
}

// CompleteWorkout enregistre la complétion d'une séance par l'athlète puis
// notifie le moteur de gamification. La complétion est la source de vérité :
// si la gamification échoue, la complétion reste enregistrée et l'erreur est
// loggée pour rattrapage.
func CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}
	workoutID := mux.Vars(r)["id"]

	var payload CompleteWorkoutRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	completedAt := time.Now()
	if payload.CompletedAt != nil {
		completedAt = *payload.CompletedAt
	}

	ctx := context.Background()

	// Vérifier que la séance existe
	var exists bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM workouts WHERE id=$1 AND deleted_at IS NULL)`,
		workoutID,
	).Scan(&exists)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check workout", err)
		return
	}
	if !exists {
		utils.ErrorSimple(w, http.StatusNotFound, "workout not found")
		return
	}

	var completion model.WorkoutCompletion
	err = database.DB.QueryRow(ctx, `
		INSERT INTO workout_completions(workout_id, user_id, completed_at, notes, created_at)
		VALUES($1,$2,$3,$4,NOW())
		RETURNING id, workout_id, user_id, completed_at, COALESCE(notes,''), created_at`,
		workoutID, user.ID, completedAt, payload.Notes,
	).Scan(&completion.ID, &completion.WorkoutID, &completion.UserID,
		&completion.CompletedAt, &completion.Notes, &completion.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not record completion", err)
		return
	}

	response := map[string]interface{}{"completion": completion}

	activity, err := Gamification.RecordActivity(ctx, user.ID, completedAt)
	if err != nil {
		if errors.Is(err, gamification.ErrInvalidInput) {
			// Timestamp rétrograde : la complétion vaut, mais pas de progression
			utils.LogError("gamification rejected activity for user %s: %v", user.ID, err)
		} else {
			utils.LogError("gamification update failed for user %s: %v", user.ID, err)
		}
	} else {
		response["gamification"] = activity
		// Les points ont bougé : le classement en cache est périmé
		utils.CacheDelete(leaderboardCacheKey)
	}

	utils.Success(w, response)
}

// GetWorkoutCompletions liste l'historique de complétions de l'athlète
func GetWorkoutCompletions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx, `
		SELECT id, workout_id, user_id, completed_at, COALESCE(notes,''), created_at
		FROM workout_completions
		WHERE user_id=$1
		ORDER BY completed_at DESC
		LIMIT 100`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query completions", err)
		return
	}
	defer rows.Close()

	completions := []model.WorkoutCompletion{}
	for rows.Next() {
		var c model.WorkoutCompletion
		if err := rows.Scan(&c.ID, &c.WorkoutID, &c.UserID, &c.CompletedAt, &c.Notes, &c.CreatedAt); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan completion row", err)
			return
		}
		completions = append(completions, c)
	}

	utils.Success(w, completions)
}

// loadWorkoutExercises charge les exercices d'une séance, joints à la
// bibliothèque pour le nom, triés par position
func loadWorkoutExercises(ctx context.Context, workoutID string) ([]model.WorkoutExercise, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT we.id, we.workout_id, we.exercise_id, e.name, we.sets, we.reps, we.rest_seconds, we.position
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id=$1
		ORDER BY we.position ASC`,
		workoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []model.WorkoutExercise{}
	for rows.Next() {
		we, err := scanner.ScanWorkoutExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *we)
	}
	return exercises, nil
}
