package handler

import (
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "GymBrah API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/signup", "description": "Inscription (athlete ou business)"},
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/me", "description": "Profil de l'utilisateur connecté"},
				{"method": "PATCH", "path": "/users/me", "description": "Mettre à jour son profil"},
				{"method": "DELETE", "path": "/users/me", "description": "Supprimer son compte (soft delete)"},
				{"method": "POST", "path": "/users/me/avatar", "description": "Upload avatar"},
				{"method": "GET", "path": "/users/me/athletes", "description": "Athlètes rattachés à la salle (business)"},
				{"method": "GET", "path": "/users/{id}", "description": "Profil public par ID"},
			},
			"exercises": []map[string]string{
				{"method": "GET", "path": "/exercises", "description": "Bibliothèque d'exercices (params: muscleGroup, category, difficulty)"},
				{"method": "GET", "path": "/exercises/{id}", "description": "Exercice par ID"},
				{"method": "POST", "path": "/exercises", "description": "Créer un exercice (business)"},
				{"method": "PUT", "path": "/exercises/{id}", "description": "Mettre à jour un exercice (business)"},
				{"method": "DELETE", "path": "/exercises/{id}", "description": "Supprimer un exercice (business)"},
			},
			"workouts": []map[string]string{
				{"method": "GET", "path": "/workouts", "description": "Séances disponibles (param: businessId)"},
				{"method": "GET", "path": "/workouts/{id}", "description": "Séance avec ses exercices"},
				{"method": "POST", "path": "/workouts", "description": "Créer une séance (business)"},
				{"method": "PUT", "path": "/workouts/{id}", "description": "Mettre à jour une séance (business)"},
				{"method": "DELETE", "path": "/workouts/{id}", "description": "Supprimer une séance (business)"},
				{"method": "POST", "path": "/workouts/{id}/complete", "description": "Marquer une séance comme complétée"},
				{"method": "GET", "path": "/workouts/completions", "description": "Historique de complétions"},
			},
			"subscriptions": []map[string]string{
				{"method": "GET", "path": "/businesses/{businessId}/plans", "description": "Plans d'une salle"},
				{"method": "POST", "path": "/plans", "description": "Publier un plan (business)"},
				{"method": "DELETE", "path": "/plans/{id}", "description": "Retirer un plan de la vente (business)"},
				{"method": "POST", "path": "/subscriptions", "description": "S'abonner à un plan"},
				{"method": "DELETE", "path": "/subscriptions/{id}", "description": "Annuler un abonnement"},
				{"method": "GET", "path": "/subscriptions/me", "description": "Mes abonnements"},
			},
			"feedback": []map[string]string{
				{"method": "POST", "path": "/feedbacks", "description": "Poster une suggestion"},
				{"method": "GET", "path": "/feedbacks", "description": "Lister les suggestions (param: status)"},
				{"method": "GET", "path": "/feedbacks/{id}", "description": "Suggestion par ID"},
				{"method": "POST", "path": "/feedbacks/{id}/vote", "description": "Voter / retirer son vote (toggle)"},
				{"method": "PATCH", "path": "/feedbacks/{id}/status", "description": "Changer le statut (business)"},
			},
			"gamification": []map[string]string{
				{"method": "GET", "path": "/gamification/me", "description": "Points, niveau, streak et achievements"},
				{"method": "GET", "path": "/gamification/me/achievements", "description": "Catalogue avec état de déblocage"},
				{"method": "GET", "path": "/gamification/users/{id}", "description": "Progression publique d'un utilisateur"},
				{"method": "GET", "path": "/gamification/users/{id}/achievements", "description": "Catalogue avec état de déblocage d'un utilisateur"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général par points (param: limit, max 100)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour GymBrah - Plateforme SaaS pour salles de sport et athlètes",
			"contact":     "support@gymbrah.com",
		},
	}

	utils.Success(w, routes)
}
