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
)

const planColumns = `id, business_id, name, description, price_cents,
	currency, "interval", is_active, created_at, updated_at`

const subscriptionColumns = `id, plan_id, user_id, business_id, status,
	payment_ref, started_at, canceled_at`

type PlanRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"max=2000"`
	PriceCents  int    `json:"priceCents" validate:"required,min=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Interval    string `json:"interval" validate:"required,oneof=month year"`
}

// GetPlans liste les plans actifs d'une salle
func GetPlans(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	ctx := context.Background()
	rows, err := database.DB.Query(ctx,
		`SELECT `+planColumns+` FROM plans
		 WHERE business_id=$1 AND is_active=true AND deleted_at IS NULL
		 ORDER BY price_cents ASC`,
		businessID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query plans", err)
		return
	}
	defer rows.Close()

	plans := []model.Plan{}
	for rows.Next() {
		p, err := scanner.ScanPlan(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan plan row", err)
			return
		}
		plans = append(plans, *p)
	}

	utils.Success(w, plans)
}

// CreatePlan publie un plan d'abonnement (business uniquement)
func CreatePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}

	var payload PlanRequest
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
		INSERT INTO plans(business_id, name, description, price_cents, currency, "interval", is_active, created_at, updated_at, created_by)
		VALUES($1,$2,$3,$4,$5,$6,true,NOW(),NOW(),$1)
		RETURNING `+planColumns,
		user.ID, payload.Name, payload.Description, payload.PriceCents,
		payload.Currency, payload.Interval,
	)

	plan, err := scanner.ScanPlan(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create plan", err)
		return
	}

	utils.Success(w, plan)
}

// DeactivatePlan retire un plan de la vente (les abonnements en cours restent valides)
func DeactivatePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireBusiness(r)
	if err != nil {
		utils.Error(w, http.StatusForbidden, "business account required", err)
		return
	}
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	res, err := database.DB.Exec(ctx,
		`UPDATE plans SET is_active=false, updated_at=NOW(), updated_by=$2
		 WHERE id=$1 AND business_id=$2 AND deleted_at IS NULL`,
		id, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not deactivate plan", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "plan not found or not owned")
		return
	}

	utils.Message(w, "plan deactivated")
}

type SubscribeRequest struct {
	PlanID string `json:"planId" validate:"required,uuid"`
	// Référence opaque retournée par le prestataire de paiement
	PaymentRef string `json:"paymentRef" validate:"required"`
}

// Subscribe abonne l'athlète authentifié à un plan. Un seul abonnement
// actif par athlète et par salle.
func Subscribe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	var payload SubscribeRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.Error(w, http.StatusBadRequest, "validation failed: "+err.Error(), nil)
		return
	}

	ctx := context.Background()

	// Le plan doit être actif ; on en déduit la salle
	var businessID string
	err = database.DB.QueryRow(ctx,
		`SELECT business_id FROM plans WHERE id=$1 AND is_active=true AND deleted_at IS NULL`,
		payload.PlanID,
	).Scan(&businessID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "plan not found or inactive", err)
		return
	}

	var alreadyActive bool
	err = database.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscriptions WHERE user_id=$1 AND business_id=$2 AND status='active')`,
		user.ID, businessID,
	).Scan(&alreadyActive)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check subscriptions", err)
		return
	}
	if alreadyActive {
		utils.ErrorSimple(w, http.StatusConflict, "already subscribed to this business")
		return
	}

	row := database.DB.QueryRow(ctx, `
		INSERT INTO subscriptions(plan_id, user_id, business_id, status, payment_ref, started_at)
		VALUES($1,$2,$3,'active',$4,NOW())
		RETURNING `+subscriptionColumns,
		payload.PlanID, user.ID, businessID, payload.PaymentRef,
	)

	sub, err := scanner.ScanSubscription(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create subscription", err)
		return
	}

	utils.Success(w, sub)
}

// CancelSubscription annule un abonnement actif de l'athlète
func CancelSubscription(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}
	id := mux.Vars(r)["id"]

	ctx := context.Background()
	row := database.DB.QueryRow(ctx, `
		UPDATE subscriptions SET status='canceled', canceled_at=NOW()
		WHERE id=$1 AND user_id=$2 AND status='active'
		RETURNING `+subscriptionColumns,
		id, user.ID,
	)

	sub, err := scanner.ScanSubscription(row)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "subscription not found or already canceled", err)
		return
	}

	utils.Success(w, sub)
}

// GetMySubscriptions liste les abonnements de l'athlète authentifié
func GetMySubscriptions(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated", err)
		return
	}

	ctx := context.Background()
	rows, err := database.DB.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE user_id=$1 ORDER BY started_at DESC`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query subscriptions", err)
		return
	}
	defer rows.Close()

	subs := []model.Subscription{}
	for rows.Next() {
		s, err := scanner.ScanSubscription(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan subscription row", err)
			return
		}
		subs = append(subs, *s)
	}

	utils.Success(w, subs)
}
