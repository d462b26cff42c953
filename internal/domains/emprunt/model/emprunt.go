package model

import (
	"time"

	"github.com/google/uuid"

	livreModel "library-backend/internal/domains/livre/model"
)

// Statut is the lifecycle state of a loan.
type Statut string

const (
	StatutEnCours  Statut = "en cours"
	StatutRetourne Statut = "retourné"
	StatutEnRetard Statut = "en retard"
)

// Statuts lists every accepted value, in display order.
var Statuts = []Statut{StatutEnCours, StatutRetourne, StatutEnRetard}

func (s Statut) IsValid() bool {
	for _, v := range Statuts {
		if s == v {
			return true
		}
	}
	return false
}

// Emprunt links one client to one copy of a livre.
// ClientID and LivreID are plain references; the records they point to may be gone.
type Emprunt struct {
	ID                 uuid.UUID  `json:"_id"`
	ClientID           uuid.UUID  `json:"clientId"`
	LivreID            uuid.UUID  `json:"livreId"`
	DateEmprunt        time.Time  `json:"dateEmprunt"`
	DateRetourPrevu    time.Time  `json:"dateRetourPrevu"`
	DateRetourEffectif *time.Time `json:"dateRetourEffectif"`
	Statut             Statut     `json:"statut"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Requester is the authenticated caller of a loan operation.
type Requester struct {
	ID   uuid.UUID
	Role string
}

func (r Requester) IsAdmin() bool {
	return r.Role == "admin"
}

// CanAccess reports whether the requester may act on data owned by clientID.
func (r Requester) CanAccess(clientID uuid.UUID) bool {
	return r.IsAdmin() || r.ID == clientID
}

// ReturnResult is the payload of a successful return.
// Livre is nil when the book record no longer exists.
type ReturnResult struct {
	Emprunt *Emprunt          `json:"emprunt"`
	Livre   *livreModel.Livre `json:"livre"`
}

// EmpruntResponse wraps a single loan as {"emprunt": ...}.
type EmpruntResponse struct {
	Emprunt *Emprunt `json:"emprunt"`
}

// EmpruntsResponse wraps a loan list as {"emprunts": [...]}.
type EmpruntsResponse struct {
	Emprunts []Emprunt `json:"emprunts"`
}
