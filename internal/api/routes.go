package api

import (
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/config"
	"github.com/gymbrah/GymBrah-backend/internal/handler"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	"github.com/gorilla/mux"
)

func SetupRouter(cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	r.Use(middleware.LoggerMiddleware)
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Users
	authenticatedRoutes.HandleFunc("/users/me", handler.GetMe).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/me", handler.UpdateMe).Methods(http.MethodPatch, http.MethodPut)
	authenticatedRoutes.HandleFunc("/users/me", handler.DeleteMe).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/me/avatar", handler.UploadAvatar).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/users/me/athletes", handler.GetMyAthletes).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)

	// Exercises
	r.HandleFunc("/exercises", handler.GetExercises).Methods(http.MethodGet)
	r.HandleFunc("/exercises/{id}", handler.GetExercise).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/exercises", handler.CreateExercise).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/exercises/{id}", handler.UpdateExercise).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/exercises/{id}", handler.DeleteExercise).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/exercises/{id}/image", handler.UploadExerciseImage).Methods(http.MethodPost)

	// Workouts
	r.HandleFunc("/workouts", handler.GetWorkouts).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/workouts/completions", handler.GetWorkoutCompletions).Methods(http.MethodGet)
	r.HandleFunc("/workouts/{id}", handler.GetWorkout).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/workouts", handler.CreateWorkout).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/workouts/{id}", handler.UpdateWorkout).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/workouts/{id}", handler.DeleteWorkout).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/workouts/{id}/complete", handler.CompleteWorkout).Methods(http.MethodPost)

	// Subscriptions
	r.HandleFunc("/businesses/{businessId}/plans", handler.GetPlans).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/plans", handler.CreatePlan).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/plans/{id}", handler.DeactivatePlan).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/subscriptions", handler.Subscribe).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/subscriptions/me", handler.GetMySubscriptions).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/subscriptions/{id}", handler.CancelSubscription).Methods(http.MethodDelete)

	// Feedback
	r.HandleFunc("/feedbacks", handler.GetFeedbacks).Methods(http.MethodGet)
	r.HandleFunc("/feedbacks/{id}", handler.GetFeedback).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/feedbacks", handler.CreateFeedback).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/feedbacks/{id}/vote", handler.VoteFeedback).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/feedbacks/{id}/status", handler.UpdateFeedbackStatus).Methods(http.MethodPatch)

	// Gamification
	authenticatedRoutes.HandleFunc("/gamification/me", handler.GetMyGamification).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/gamification/me/achievements", handler.GetMyAchievements).Methods(http.MethodGet)
	r.HandleFunc("/gamification/users/{id}", handler.GetUserGamification).Methods(http.MethodGet)
	r.HandleFunc("/gamification/users/{id}/achievements", handler.GetUserAchievements).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	return middleware.CORSMiddleware(r)
}
