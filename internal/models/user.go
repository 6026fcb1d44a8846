package model

import (
	"time"
)

// Role distingue les deux types de comptes : salle/coach ou athlète
type Role string

const (
	RoleAthlete  Role = "athlete"
	RoleBusiness Role = "business"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string    `json:"createdBy,omitempty"`
	UpdatedBy *string    `json:"updatedBy,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string    `json:"deletedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

type UserProfile struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Avatar     string    `json:"avatar,omitempty"`
	Goal       string    `json:"goal,omitempty"`
	BusinessID *string   `json:"businessId,omitempty"` // salle à laquelle l'athlète est rattaché
	JoinDate   time.Time `json:"joinDate,omitempty"`
	DateFields
}

// UserCreator contient les informations de l'utilisateur créateur d'une entité
type UserCreator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
