package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrLivreNotFound is returned when the book record does not exist
	ErrLivreNotFound = errors.New("livre not found")

	// ErrLivreIndisponible is returned when no copy is left to lend
	ErrLivreIndisponible = errors.New("livre not available")

	// ErrISBNAlreadyExists is returned on a duplicate isbn
	ErrISBNAlreadyExists = errors.New("isbn already exists")

	// ErrInvalidQuantite is returned when a write would leave quantite negative
	ErrInvalidQuantite = errors.New("quantite cannot be negative")
)

// NewLivreNotFoundError creates a detailed not found error
func NewLivreNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrLivreNotFound, id)
}

// NewLivreIndisponibleError creates a detailed availability error
func NewLivreIndisponibleError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrLivreIndisponible, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrLivreNotFound)
}

// IsIndisponibleError checks if error is an availability error
func IsIndisponibleError(err error) bool {
	return errors.Is(err, ErrLivreIndisponible)
}

// IsValidationError checks if error comes from invalid input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidQuantite) || errors.Is(err, ErrISBNAlreadyExists)
}
