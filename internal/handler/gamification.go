package handler

import (
	"context"
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetMyGamification retourne l'état de progression de l'athlète authentifié
func GetMyGamification(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	record, err := Gamification.Record(context.Background(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load gamification record", err)
		return
	}

	utils.Success(w, record)
}

// GetUserGamification retourne l'état de progression public d'un utilisateur
func GetUserGamification(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	record, err := Gamification.Record(context.Background(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load gamification record", err)
		return
	}

	utils.Success(w, record)
}

// GetMyAchievements retourne le catalogue complet d'achievements/badges
// avec l'état de déblocage de l'athlète authentifié
func GetMyAchievements(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}
	writeAchievements(w, user.ID)
}

// GetUserAchievements retourne le catalogue avec l'état de déblocage
// d'un utilisateur donné
func GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	writeAchievements(w, mux.Vars(r)["id"])
}

func writeAchievements(w http.ResponseWriter, userID string) {
	ctx := context.Background()
	record, err := Gamification.Record(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load gamification record", err)
		return
	}

	unlocked := map[string]bool{}
	for _, id := range record.Achievements {
		unlocked[id] = true
	}
	for _, id := range record.Badges {
		unlocked[id] = true
	}

	rows, err := database.DB.Query(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(icon,''), category, kind
		FROM achievement_catalog
		ORDER BY category, id`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query achievement catalog", err)
		return
	}
	defer rows.Close()

	achievements := []model.AchievementWithStatus{}
	for rows.Next() {
		var a model.AchievementWithStatus
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Category, &a.Kind); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan catalog row", err)
			return
		}
		a.Unlocked = unlocked[a.ID]
		achievements = append(achievements, a)
	}

	utils.Success(w, achievements)
}
