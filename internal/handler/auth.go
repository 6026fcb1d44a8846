package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=athlete business"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user model.UserProfile
	// Lors du signup, l'utilisateur se crée lui-même : created_by est posé après coup
	err = database.DB.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role, join_date, created_at, updated_at)
		 VALUES($1,$2,$3,$4,NOW(),NOW(),NOW())
		 RETURNING id, name, email, role, join_date, created_at, updated_at`,
		payload.Name, payload.Email, string(hashed), payload.Role,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		utils.Error(w, http.StatusConflict, "could not create user (email already taken?)", err)
		return
	}

	_, err = database.DB.Exec(ctx, `UPDATE users SET created_by=$1 WHERE id=$1`, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update created_by", err)
		return
	}

	// Auto-login après inscription
	token, err := createSession(ctx, user.ID, r)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	var user model.UserProfile
	var hashedPassword string

	err := database.DB.QueryRow(ctx,
		`SELECT id, name, email, role, COALESCE(avatar,'') as avatar, COALESCE(goal,'') as goal,
		 business_id, join_date, created_at, updated_at, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Avatar, &user.Goal,
		&user.BusinessID, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &hashedPassword)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := createSession(ctx, user.ID, r)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	ctx := context.Background()

	// Soft delete de la session
	res, err := database.DB.Exec(ctx,
		`UPDATE sessions
		 SET is_active=false, deleted_at=NOW(), deleted_by=user_id
		 WHERE token=$1 AND is_active=true AND deleted_at IS NULL`,
		token,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not logout", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or already logged out")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// createSession génère un token opaque et enregistre la session
func createSession(ctx context.Context, userID string, r *http.Request) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	_, err := database.DB.Exec(ctx,
		`INSERT INTO sessions(user_id, token, ip_address, user_agent, is_active, created_at, expires_at, created_by)
		 VALUES($1,$2,$3,$4,true,$5,$6,$7)`,
		userID, token, r.RemoteAddr, r.UserAgent(), now, now.Add(sessionDuration), userID,
	)
	if err != nil {
		return "", err
	}
	return token, nil
}
