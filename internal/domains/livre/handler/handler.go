package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/livre/model"
	"library-backend/internal/domains/livre/service"
	"library-backend/internal/shared/response"
)

// =====================================================
// LIVRE HANDLER
// =====================================================

type LivreHandler struct {
	livreService service.ServiceInterface
}

func NewLivreHandler(livreService service.ServiceInterface) *LivreHandler {
	return &LivreHandler{livreService: livreService}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Identifiant de livre invalide")
		return uuid.Nil, false
	}
	return id, true
}

// mapLivreError translates domain errors to an HTTP status and message
func mapLivreError(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrLivreNotFound):
		return http.StatusNotFound, "Livre non trouvé"
	case errors.Is(err, model.ErrLivreIndisponible):
		return http.StatusBadRequest, "Livre non disponible"
	case errors.Is(err, model.ErrISBNAlreadyExists):
		return http.StatusConflict, "Un livre avec cet ISBN existe déjà"
	case errors.Is(err, model.ErrInvalidQuantite):
		return http.StatusBadRequest, "La quantité ne peut pas être négative"
	default:
		return http.StatusInternalServerError, "Erreur serveur"
	}
}

func (h *LivreHandler) fail(c *gin.Context, err error) {
	status, msg := mapLivreError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("livre request failed")
	}
	response.Error(c, status, msg)
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListLivres lists the catalogue
// GET /api/livres?q=&categorie=&page=&limit=
func (h *LivreHandler) ListLivres(c *gin.Context) {
	var req model.ListLivresRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Paramètres de recherche invalides")
		return
	}
	if raw := c.Query("categorie"); raw != "" {
		categorieID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Identifiant de catégorie invalide")
			return
		}
		req.CategorieID = &categorieID
	}

	res, err := h.livreService.ListLivres(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livres récupérés avec succès", res)
}

// GetLivre returns one book
// GET /api/livres/:id
func (h *LivreHandler) GetLivre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	livre, err := h.livreService.GetLivre(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre récupéré avec succès", livre)
}

// CheckDisponibilite tells whether a copy can be borrowed
// GET /api/livres/:id/disponibilite
func (h *LivreHandler) CheckDisponibilite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	res, err := h.livreService.CheckDisponibilite(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Disponibilité vérifiée", res)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// CreateLivre adds a book to the catalogue
// POST /api/livres
func (h *LivreHandler) CreateLivre(c *gin.Context) {
	var req model.CreateLivreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	livre, err := h.livreService.CreateLivre(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Created(c, "Livre créé avec succès", livre)
}

// UpdateLivre edits a book
// PUT /api/livres/:id
func (h *LivreHandler) UpdateLivre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateLivreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	livre, err := h.livreService.UpdateLivre(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre mis à jour avec succès", livre)
}

// DeleteLivre removes a book
// DELETE /api/livres/:id
func (h *LivreHandler) DeleteLivre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.livreService.DeleteLivre(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre supprimé avec succès", nil)
}
