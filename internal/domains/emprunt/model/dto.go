package model

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	FieldStatut          = "statut"
	FieldDateRetourPrevu = "dateRetourPrevu"
)

// UpdateEmpruntRequest - PUT /api/emprunts/:id
type UpdateEmpruntRequest struct {
	Statut          *Statut
	DateRetourPrevu *time.Time
}

// ParseUpdateEmpruntRequest accepts only statut and dateRetourPrevu.
// Any other key rejects the whole payload.
func ParseUpdateEmpruntRequest(raw map[string]json.RawMessage) (UpdateEmpruntRequest, error) {
	var req UpdateEmpruntRequest

	for key := range raw {
		if key != FieldStatut && key != FieldDateRetourPrevu {
			return req, NewInvalidUpdatesError(key)
		}
	}

	if v, ok := raw[FieldStatut]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return req, NewInvalidUpdatesError(FieldStatut)
		}
		statut := Statut(s)
		req.Statut = &statut
	}

	if v, ok := raw[FieldDateRetourPrevu]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return req, NewInvalidUpdatesError(FieldDateRetourPrevu)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return req, NewInvalidUpdatesError(FieldDateRetourPrevu)
		}
		req.DateRetourPrevu = &t
	}

	return req, req.Validate()
}

func (r UpdateEmpruntRequest) Validate() error {
	statuts := make([]interface{}, len(Statuts))
	for i, s := range Statuts {
		statuts[i] = s
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Statut, validation.NilOrNotEmpty, validation.In(statuts...).Error("statut must be one of: en cours, retourné, en retard")),
	)
}

// Apply copies the provided fields onto e.
func (r UpdateEmpruntRequest) Apply(e *Emprunt) {
	if r.Statut != nil {
		e.Statut = *r.Statut
	}
	if r.DateRetourPrevu != nil {
		e.DateRetourPrevu = r.DateRetourPrevu.UTC()
	}
}
