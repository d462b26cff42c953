package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// CreateClientRequest is used by the operator CLI and tests to provision accounts.
type CreateClientRequest struct {
	Nom      string
	Email    string
	Password string
	Adresse  string
	Role     string
}

func (r CreateClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom, validation.Required.Error("nom is required"), validation.Length(2, 100)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Role, validation.In(RoleClient, RoleAdmin).Error("role must be client or admin")),
	)
}

// NormalizedEmail lower-cases and trims the email.
func (r CreateClientRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

// WishlistResponse - GET /api/clients/wishlist
type WishlistResponse struct {
	ClientID uuid.UUID   `json:"clientId"`
	Wishlist []uuid.UUID `json:"wishlist"`
}
