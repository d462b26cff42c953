package model

import (
	"time"

	"github.com/google/uuid"
)

// Livre is a catalogue entry. Quantite counts the copies that can be lent right now.
type Livre struct {
	ID               uuid.UUID  `json:"_id"`
	ISBN             string     `json:"isbn"`
	Titre            string     `json:"titre"`
	Auteur           string     `json:"auteur"`
	AnneePublication int        `json:"anneePublication"`
	Editeur          string     `json:"editeur"`
	Langue           string     `json:"langue"`
	Description      string     `json:"description"`
	Quantite         int        `json:"quantite"`
	CategorieID      *uuid.UUID `json:"categorie,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CheckDisponibilite reports whether at least one copy can be lent.
func (l *Livre) CheckDisponibilite() bool {
	return l.Quantite > 0
}
