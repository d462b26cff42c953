package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmpruntNotFound   = errors.New("emprunt not found")
	ErrNoEmprunts        = errors.New("no emprunts found")
	ErrLivreIndisponible = errors.New("livre not available")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidUpdates    = errors.New("invalid updates")
	ErrAlreadyReturned   = errors.New("emprunt already returned")
)

// NewInvalidUpdatesError names the offending field
func NewInvalidUpdatesError(field string) error {
	return fmt.Errorf("%w: field %q", ErrInvalidUpdates, field)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEmpruntNotFound) || errors.Is(err, ErrNoEmprunts)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUpdates) || errors.Is(err, ErrAlreadyReturned)
}
