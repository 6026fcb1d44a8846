package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/scanner"
	"github.com/gymbrah/GymBrah-backend/internal/services"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/gorilla/mux"
)

const exerciseColumns = `id, business_id, name, description, muscle_group,
	category, difficulty, video_url, image_url, created_at, updated_at, created_by`

type ExerciseRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"max=2000"`
	MuscleGroup string `json:"muscleGroup" validate:"required,oneof=chest back legs shoulders arms core full_body"`
	Category    string `json:"category" validate:"required,oneof=strength cardio mobility"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
}

// GetExercises liste les exercices, filtrables par muscle_group / category / difficulty
func GetExercises(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE deleted_at IS NULL`
	args := []interface{}{}
	i := 1

	if mg := r.URL.Query().Get("muscleGroup"); mg != "" {
		query += fmt.Sprintf(` AND muscle_group=$%d`, i)
		args = append(args, mg)
		i++
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		query += fmt.Sprintf(` AND category=$%d`, i)
		args = append(args, cat)
		i++
	}
	if diff := r.URL.Query().Get("difficulty"); diff != "" {
		query += fmt.Sprintf(` AND difficulty=$%d`, i)
		args = append(args, diff)
		i++
	}
	query += ` ORDER BY name ASC`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query exercises", err)
		return
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		ex, err := scanner.ScanExercise(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan exercise row", err)
			return
		}
		exercises = append(exercises, *ex)
	}

	utils.Success(w, exercises)
}

func GetExercise(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id=$1 AND deleted_at IS NULL`, id)

	ex, err := scanner.ScanExercise(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "exercise not found", err)
		return
	}

	utils.Success(w, ex)
}

// CreateExercise crée un exercice dans la bibliothèque de la salle (business uniquement)
func CreateExercise(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}

	var payload ExerciseRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		INSERT INTO exercises(business_id, name, description, muscle_group, category, difficulty, video_url, created_at, updated_at, created_by)
		VALUES($1,$2,$3,$4,$5,$6,$7,NOW(),NOW(),$1)
		RETURNING `+exerciseColumns,
		user.ID, payload.Name, payload.Description, payload.MuscleGroup,
		payload.Category, payload.Difficulty, payload.VideoURL,
	)

	ex, err := scanner.ScanExercise(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create exercise", err)
		return
	}

	utils.Success(w, ex)
}

// UpdateExercise modifie un exercice ; seul son créateur (la salle) peut le faire
func UpdateExercise(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	var payload ExerciseRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE exercises SET
			name=$3, description=$4, muscle_group=$5, category=$6, difficulty=$7, video_url=$8,
			updated_at=NOW(), updated_by=$2
		WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL
		RETURNING `+exerciseColumns,
		id, user.ID, payload.Name, payload.Description, payload.MuscleGroup,
		payload.Category, payload.Difficulty, payload.VideoURL,
	)

	ex, err := scanner.ScanExercise(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "exercise not found or not owned", err)
		return
	}

	utils.Success(w, ex)
}

// UploadExerciseImage upload l'illustration d'un exercice de la salle
func UploadExerciseImage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	r.ParseMultipartForm(10 << 20)

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/jpg" {
		utils.ErrorSimple(w, http.StatusBadRequest, "only JPEG and PNG images are allowed")
		return
	}

	if services.Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "image hosting is not configured")
		return
	}

	ctx := context.Background()
	imageURL, err := services.Cloudinary.UploadExerciseImage(ctx, file, id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload image", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		UPDATE exercises SET image_url=$3, updated_at=NOW(), updated_by=$2
		WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL
		RETURNING `+exerciseColumns,
		id, user.ID, imageURL,
	)

	ex, err := scanner.ScanExercise(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "exercise not found or not owned", err)
		return
	}

	utils.Success(w, ex)
}

// DeleteExercise soft delete un exercice de la salle
func DeleteExercise(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	res, err := database.DB.Exec(ctx,
		`UPDATE exercises SET deleted_at=NOW(), deleted_by=$2
		 WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL`,
		id, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete exercise", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "exercise not found or not owned")
		return
	}

	utils.Message(w, "exercise deleted")
}
