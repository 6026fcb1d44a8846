package model

import "time"

// Plan est une offre d'abonnement publiée par une salle.
// Le paiement lui-même est géré par le prestataire externe.
type Plan struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int    `json:"priceCents"`
	Currency    string `json:"currency"` // EUR, USD...
	Interval    string `json:"interval"` // month, year
	IsActive    bool   `json:"isActive"`
	DateFields
}

// Subscription lie un athlète à un plan d'une salle
type Subscription struct {
	ID         string     `json:"id"`
	PlanID     string     `json:"planId"`
	UserID     string     `json:"userId"`
	BusinessID string     `json:"businessId"`
	Status     string     `json:"status"` // active, canceled
	PaymentRef string     `json:"paymentRef,omitempty"` // référence opaque du prestataire de paiement
	StartedAt  time.Time  `json:"startedAt"`
	CanceledAt *time.Time `json:"canceledAt,omitempty"`
}
