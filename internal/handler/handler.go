package handler

import (
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/gamification"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
)

// Gamification est le moteur partagé par les handlers, initialisé au démarrage
var Gamification *gamification.Store

// InitGamification branche le moteur de gamification sur son stockage
func InitGamification(store *gamification.Store) {
	Gamification = store
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, map[string]string{"status": "ok"})
}
