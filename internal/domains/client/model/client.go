package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Client is a library member. Wishlist holds livre IDs in insertion order.
type Client struct {
	ID           uuid.UUID   `json:"_id"`
	Nom          string      `json:"nom"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Adresse      string      `json:"adresse"`
	Active       bool        `json:"active"`
	Role         string      `json:"role"`
	Wishlist     []uuid.UUID `json:"wishlist"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (c *Client) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// InWishlist reports whether livreID is already in the wishlist.
func (c *Client) InWishlist(livreID uuid.UUID) bool {
	for _, id := range c.Wishlist {
		if id == livreID {
			return true
		}
	}
	return false
}
