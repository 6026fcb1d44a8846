package handler

import (
	"context"
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/scanner"
	"github.com/gymbrah/GymBrah-backend/internal/services"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/gorilla/mux"
)

const userColumns = `id, name, email, role, avatar, goal, business_id,
	join_date, created_at, updated_at, created_by, updated_by`

// GetMe retourne le profil de l'utilisateur authentifié
func GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}
	utils.Success(w, user)
}

// GetUser retourne un profil public par id
func GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1 AND deleted_at IS NULL`, id)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "user not found", err)
		return
	}

	utils.Success(w, user)
}

type UpdateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=100"`
	Goal       *string `json:"goal" validate:"omitempty,max=500"`
	BusinessID *string `json:"businessId"`
}

// UpdateMe met à jour le profil de l'utilisateur authentifié.
// Seuls les champs présents dans le body sont modifiés.
func UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	var payload UpdateProfileRequest
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
		UPDATE users SET
			name = COALESCE($2, name),
			goal = COALESCE($3, goal),
			business_id = COALESCE($4, business_id),
			updated_at = NOW(),
			updated_by = $1
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		user.ID, payload.Name, payload.Goal, payload.BusinessID,
	)

	updated, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}

	utils.Success(w, updated)
}

// UploadAvatar gère l'upload d'avatar de l'utilisateur authentifié
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	// Limiter la taille du fichier à 10MB
	r.ParseMultipartForm(10 << 20)

	file, header, err := r.FormFile("avatar")
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
	avatarURL, err := services.Cloudinary.UploadAvatar(ctx, file, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		UPDATE users SET avatar=$2, updated_at=NOW(), updated_by=$1
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING `+userColumns,
		user.ID, avatarURL,
	)

	updated, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated user", err)
		return
	}

	utils.Success(w, updated)
}

// GetMyAthletes liste les athlètes rattachés à la salle authentifiée
func GetMyAthletes(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE business_id=$1 AND deleted_at IS NULL
		 ORDER BY name ASC`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query athletes", err)
		return
	}
	defer rows.Close()

	athletes := []model.UserProfile{}
	for rows.Next() {
		athlete, err := scanner.ScanUserProfile(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan user row", err)
			return
		}
		athletes = append(athletes, *athlete)
	}

	utils.Success(w, athletes)
}

// DeleteMe soft delete le compte de l'utilisateur authentifié et ses sessions
func DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	ctx := context.Background()
	_, err = database.DB.Exec(ctx,
		`UPDATE users SET deleted_at=NOW(), deleted_by=$1 WHERE id=$1 AND deleted_at IS NULL`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE sessions SET is_active=false, deleted_at=NOW(), deleted_by=$1
		 WHERE user_id=$1 AND deleted_at IS NULL`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not revoke sessions", err)
		return
	}

	// Nettoyage de l'avatar hébergé, best effort
	if user.Avatar != "" && services.Cloudinary != nil {
		if err := services.Cloudinary.DeleteImage(ctx, "gymbrah/avatars/"+user.ID); err != nil {
			utils.LogError("could not delete avatar for user %s: %v", user.ID, err)
		}
	}

	utils.Message(w, "account deleted")
}
