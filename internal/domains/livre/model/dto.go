package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var isbnPattern = regexp.MustCompile(`^[0-9Xx-]{10,17}$`)

const isbnFormatMessage = "isbn must be 10 to 17 characters of digits, hyphens or X"

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateLivreRequest - POST /api/livres
type CreateLivreRequest struct {
	ISBN             string     `json:"isbn"`
	Titre            string     `json:"titre"`
	Auteur           string     `json:"auteur"`
	AnneePublication int        `json:"anneePublication"`
	Editeur          string     `json:"editeur"`
	Langue           string     `json:"langue"`
	Description      string     `json:"description"`
	Quantite         int        `json:"quantite"`
	CategorieID      *uuid.UUID `json:"categorie"`
}

func (r CreateLivreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Match(isbnPattern).Error(isbnFormatMessage),
		),
		validation.Field(&r.Titre, validation.Required.Error("titre is required"), validation.Length(1, 255)),
		validation.Field(&r.Auteur, validation.Required.Error("auteur is required"), validation.Length(1, 255)),
		validation.Field(&r.AnneePublication, validation.Min(0), validation.Max(9999)),
		validation.Field(&r.Langue, validation.Length(0, 50)),
		validation.Field(&r.Quantite, validation.Min(0).Error("quantite cannot be negative")),
	)
}

// ToLivre builds a new entity. ID and timestamps are set by the caller.
func (r CreateLivreRequest) ToLivre() *Livre {
	return &Livre{
		ISBN:             strings.TrimSpace(r.ISBN),
		Titre:            strings.TrimSpace(r.Titre),
		Auteur:           strings.TrimSpace(r.Auteur),
		AnneePublication: r.AnneePublication,
		Editeur:          r.Editeur,
		Langue:           r.Langue,
		Description:      r.Description,
		Quantite:         r.Quantite,
		CategorieID:      r.CategorieID,
	}
}

// UpdateLivreRequest - PUT /api/livres/:id
// Only non-nil fields are applied. Quantite is overwritten as-is.
type UpdateLivreRequest struct {
	ISBN             *string    `json:"isbn"`
	Titre            *string    `json:"titre"`
	Auteur           *string    `json:"auteur"`
	AnneePublication *int       `json:"anneePublication"`
	Editeur          *string    `json:"editeur"`
	Langue           *string    `json:"langue"`
	Description      *string    `json:"description"`
	Quantite         *int       `json:"quantite"`
	CategorieID      *uuid.UUID `json:"categorie"`
}

func (r UpdateLivreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ISBN, validation.NilOrNotEmpty, validation.Match(isbnPattern).Error(isbnFormatMessage)),
		validation.Field(&r.Titre, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Auteur, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.AnneePublication, validation.Min(0), validation.Max(9999)),
		validation.Field(&r.Quantite, validation.Min(0).Error("quantite cannot be negative")),
	)
}

// Apply copies the provided fields onto l.
func (r UpdateLivreRequest) Apply(l *Livre) {
	if r.ISBN != nil {
		l.ISBN = strings.TrimSpace(*r.ISBN)
	}
	if r.Titre != nil {
		l.Titre = strings.TrimSpace(*r.Titre)
	}
	if r.Auteur != nil {
		l.Auteur = strings.TrimSpace(*r.Auteur)
	}
	if r.AnneePublication != nil {
		l.AnneePublication = *r.AnneePublication
	}
	if r.Editeur != nil {
		l.Editeur = *r.Editeur
	}
	if r.Langue != nil {
		l.Langue = *r.Langue
	}
	if r.Description != nil {
		l.Description = *r.Description
	}
	if r.Quantite != nil {
		l.Quantite = *r.Quantite
	}
	if r.CategorieID != nil {
		l.CategorieID = r.CategorieID
	}
}

// ListLivresRequest - GET /api/livres
type ListLivresRequest struct {
	Q           string     `form:"q"`
	CategorieID *uuid.UUID `form:"-"`
	Page        int        `form:"page"`
	Limit       int        `form:"limit"`
}

// Normalize clamps paging parameters to sane values.
func (r *ListLivresRequest) Normalize() {
	r.Q = strings.TrimSpace(r.Q)
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = DefaultPageSize
	}
	if r.Limit > MaxPageSize {
		r.Limit = MaxPageSize
	}
}

// Offset returns the number of rows to skip.
func (r ListLivresRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type ListLivresResponse struct {
	Livres []Livre `json:"livres"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

type DisponibiliteResponse struct {
	LivreID    uuid.UUID `json:"livreId"`
	Disponible bool      `json:"disponible"`
	Quantite   int       `json:"quantite"`
}
