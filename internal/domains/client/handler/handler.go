package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/client/model"
	"library-backend/internal/domains/client/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type ClientHandler struct {
	clientService service.ServiceInterface
}

func NewClientHandler(clientService service.ServiceInterface) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func mapClientError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrClientNotFound):
		return http.StatusNotFound, "Client non trouvé"
	case errors.Is(err, model.ErrLivreNotFound):
		return http.StatusNotFound, "Livre non trouvé"
	case errors.Is(err, model.ErrAlreadyInWishlist):
		return http.StatusBadRequest, "Livre déjà dans la wishlist"
	case errors.Is(err, model.ErrNotInWishlist):
		return http.StatusBadRequest, "Livre non présent dans la wishlist"
	default:
		return http.StatusInternalServerError, "Erreur serveur"
	}
}

func (h *ClientHandler) fail(c *gin.Context, err error) {
	status, msg := mapClientError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("client request failed")
	}
	response.Error(c, status, msg)
}

// wishlistTarget resolves the authenticated client and the :livreId param.
func wishlistTarget(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	clientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Non authentifié")
		return uuid.Nil, uuid.Nil, false
	}

	livreID, err := uuid.Parse(c.Param("livreId"))
	if err != nil {
		response.BadRequest(c, "Identifiant de livre invalide")
		return uuid.Nil, uuid.Nil, false
	}
	return clientID, livreID, true
}

// GetWishlist returns the caller's wishlist
// GET /api/clients/wishlist
func (h *ClientHandler) GetWishlist(c *gin.Context) {
	clientID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Non authentifié")
		return
	}

	res, err := h.clientService.GetWishlist(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Wishlist récupérée avec succès", res)
}

// AddToWishlist
// POST /api/clients/wishlist/:livreId
func (h *ClientHandler) AddToWishlist(c *gin.Context) {
	clientID, livreID, ok := wishlistTarget(c)
	if !ok {
		return
	}

	res, err := h.clientService.AddToWishlist(c.Request.Context(), clientID, livreID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre ajouté à la wishlist", res)
}

// RemoveFromWishlist
// DELETE /api/clients/wishlist/:livreId
func (h *ClientHandler) RemoveFromWishlist(c *gin.Context) {
	clientID, livreID, ok := wishlistTarget(c)
	if !ok {
		return
	}

	res, err := h.clientService.RemoveFromWishlist(c.Request.Context(), clientID, livreID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre retiré de la wishlist", res)
}
