package handler

import (
	"context"
	"net/http"

	"github.com/gymbrah/GymBrah-backend/internal/database"
	"github.com/gymbrah/GymBrah-backend/internal/middleware"
	model "github.com/gymbrah/GymBrah-backend/internal/models"
	"github.com/gymbrah/GymBrah-backend/internal/scanner"
	"github.com/gymbrah/GymBrah-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

const feedbackColumns = `f.id, f.user_id, f.title, f.body, f.category, f.status, f.tags,
	f.upvotes, f.created_at, f.updated_at, u.name, u.avatar`

type FeedbackRequest struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Body     string   `json:"body" validate:"required,min=10,max=5000"`
	Category string   `json:"category" validate:"required,oneof=feature bug improvement other"`
	Tags     []string `json:"tags" validate:"max=5,dive,min=1,max=30"`
}

// CreateFeedback poste une suggestion. Le contenu libre est assaini
// avant stockage (HTML/scripts retirés).
func CreateFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	var payload FeedbackRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	title := utils.Sanitize(payload.Title)
	body := utils.Sanitize(payload.Body)
	tags := make([]string, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		tags = append(tags, utils.Sanitize(tag))
	}

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		INSERT INTO feedbacks(user_id, title, body, category, status, tags, upvotes, created_at, updated_at, created_by)
		VALUES($1,$2,$3,$4,'open',$5,0,NOW(),NOW(),$1)
		RETURNING id, user_id, title, body, category, status, tags, upvotes, created_at, updated_at, $6::text, $7::text`,
		user.ID, title, body, payload.Category, pq.Array(tags), user.Name, user.Avatar,
	)

	feedback, err := scanner.ScanFeedback(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create feedback", err)
		return
	}

	utils.Success(w, feedback)
}

// GetFeedbacks liste les feedbacks, les plus votés d'abord.
// Si l'appelant est authentifié, userVoted est renseigné.
func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	currentUserID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		currentUserID = user.ID
	}

	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks f
		JOIN users u ON u.id = f.user_id
		WHERE f.deleted_at IS NULL`
	args := []interface{}{}

	if status := r.URL.Query().Get("status"); status != "" {
		query += ` AND f.status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY f.upvotes DESC, f.created_at DESC LIMIT 100`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query feedbacks", err)
		return
	}
	defer rows.Close()

	feedbacks := []model.Feedback{}
	for rows.Next() {
		f, err := scanner.ScanFeedback(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan feedback row", err)
			return
		}
		feedbacks = append(feedbacks, *f)
	}

	if currentUserID != "" && len(feedbacks) > 0 {
		if err := markUserVotes(ctx, currentUserID, feedbacks); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not check votes", err)
			return
		}
	}

	utils.Success(w, feedbacks)
}

func GetFeedback(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedbacks f
		JOIN users u ON u.id = f.user_id
		WHERE f.id=$1 AND f.deleted_at IS NULL`,
		id,
	)

	feedback, err := scanner.ScanFeedback(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "feedback not found", err)
		return
	}

	if user, err := middleware.GetUserFromContext(r); err == nil {
		list := []model.Feedback{*feedback}
		if err := markUserVotes(ctx, user.ID, list); err == nil {
			feedback.UserVoted = list[0].UserVoted
		}
	}

	utils.Success(w, feedback)
}

// VoteFeedback ajoute ou retire le vote de l'utilisateur (toggle).
// Le compteur upvotes est maintenu dans la même transaction que le vote.
func VoteFeedback(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}
	feedbackID := mux.Vars(r)["id"]

	ctx := context.Background()
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx,
		`DELETE FROM feedback_votes WHERE feedback_id=$1 AND user_id=$2`,
		feedbackID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not toggle vote", err)
		return
	}

	voted := false
	if res.RowsAffected() == 0 {
		// Pas de vote existant : on vote
		_, err = tx.Exec(ctx,
			`INSERT INTO feedback_votes(feedback_id, user_id, created_at) VALUES($1,$2,NOW())`,
			feedbackID, user.ID,
		)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "feedback not found", err)
			return
		}
		voted = true
	}

	delta := -1
	if voted {
		delta = 1
	}
	var upvotes int
	err = tx.QueryRow(ctx,
		`UPDATE feedbacks SET upvotes = upvotes + $2, updated_at=NOW()
		 WHERE id=$1 AND deleted_at IS NULL
		 RETURNING upvotes`,
		feedbackID, delta,
	).Scan(&upvotes)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "feedback not found", err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit vote", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"voted":   voted,
		"upvotes": upvotes,
	})
}

// UpdateFeedbackStatus change le statut d'un feedback (business uniquement)
func UpdateFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	var payload struct {
		Status string `json:"status" validate:"required,oneof=open planned in_progress done declined"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()
	res, err := database.DB.Exec(ctx,
		`UPDATE feedbacks SET status=$2, updated_at=NOW(), updated_by=$3
		 WHERE id=$1 AND deleted_at IS NULL`,
		id, payload.Status, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update status", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "feedback not found")
		return
	}

	utils.Message(w, "status updated")
}

// markUserVotes renseigne UserVoted pour une liste de feedbacks
func markUserVotes(ctx context.Context, userID string, feedbacks []model.Feedback) error {
	ids := make([]string, 0, len(feedbacks))
	for _, f := range feedbacks {
		ids = append(ids, f.ID)
	}

	rows, err := database.DB.Query(ctx,
		`SELECT feedback_id FROM feedback_votes WHERE user_id=$1 AND feedback_id = ANY($2)`,
		userID, ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	voted := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		voted[id] = true
	}

	for i := range feedbacks {
		feedbacks[i].UserVoted = voted[feedbacks[i].ID]
	}
	return nil
}
