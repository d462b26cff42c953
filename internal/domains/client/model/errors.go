package model

import "errors"

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAlreadyInWishlist  = errors.New("livre already in wishlist")
	ErrNotInWishlist      = errors.New("livre not in wishlist")
	ErrLivreNotFound      = errors.New("livre not found")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrLivreNotFound)
}

func IsWishlistConflict(err error) bool {
	return errors.Is(err, ErrAlreadyInWishlist) || errors.Is(err, ErrNotInWishlist)
}
