package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"library-backend/internal/domains/emprunt/model"
)

// ServiceInterface defines the loan lifecycle
type ServiceInterface interface {
	// CreateLoan lends one copy of livreID to clientID.
	CreateLoan(ctx context.Context, livreID, clientID uuid.UUID) (*model.Emprunt, error)

	GetLoanByID(ctx context.Context, id uuid.UUID, requester model.Requester) (*model.Emprunt, error)
	GetAllLoans(ctx context.Context) ([]model.Emprunt, error)
	GetLoansByClient(ctx context.Context, clientID uuid.UUID, requester model.Requester) ([]model.Emprunt, error)

	// UpdateLoan applies an admin edit. It never touches book stock.
	UpdateLoan(ctx context.Context, id uuid.UUID, updates map[string]json.RawMessage) (*model.Emprunt, error)

	// ReturnLoan closes the loan and puts the copy back in stock.
	ReturnLoan(ctx context.Context, id uuid.UUID, requester model.Requester) (*model.ReturnResult, error)

	// DeleteLoan removes the loan and restocks the book whatever the loan's statut.
	DeleteLoan(ctx context.Context, id uuid.UUID) (*model.Emprunt, error)
}
