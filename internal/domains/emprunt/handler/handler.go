package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/emprunt/model"
	"library-backend/internal/domains/emprunt/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

// =====================================================
// EMPRUNT HANDLER
// =====================================================

type EmpruntHandler struct {
	empruntService service.ServiceInterface
}

func NewEmpruntHandler(empruntService service.ServiceInterface) *EmpruntHandler {
	return &EmpruntHandler{empruntService: empruntService}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func mapEmpruntError(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.Is(err, model.ErrEmpruntNotFound):
		return http.StatusNotFound, "Emprunt non trouvé"
	case errors.Is(err, model.ErrNoEmprunts):
		return http.StatusNotFound, "Aucun emprunt trouvé"
	case errors.Is(err, model.ErrLivreIndisponible):
		return http.StatusBadRequest, "Livre non disponible"
	case errors.Is(err, model.ErrPermissionDenied):
		return http.StatusForbidden, "Accès refusé"
	case errors.Is(err, model.ErrInvalidUpdates):
		return http.StatusBadRequest, "Mises à jour invalides"
	case errors.Is(err, model.ErrAlreadyReturned):
		return http.StatusBadRequest, "Emprunt déjà retourné"
	case errors.As(err, &verrs):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Erreur serveur"
	}
}

func (h *EmpruntHandler) fail(c *gin.Context, err error) {
	status, msg := mapEmpruntError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("emprunt request failed")
	}
	response.Error(c, status, msg)
}

func requester(c *gin.Context) (model.Requester, bool) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Non authentifié")
		return model.Requester{}, false
	}
	return model.Requester{ID: id, Role: role}, true
}

func parseUUIDParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// CLIENT ENDPOINTS
// =====================================================

// CreateLoan borrows one copy for the caller
// POST /api/emprunts/:id (id is the livre)
func (h *EmpruntHandler) CreateLoan(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	livreID, ok := parseUUIDParam(c, "id", "Identifiant de livre invalide")
	if !ok {
		return
	}

	emprunt, err := h.empruntService.CreateLoan(c.Request.Context(), livreID, req.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Created(c, "Emprunt créé avec succès", model.EmpruntResponse{Emprunt: emprunt})
}

// GetLoan
// GET /api/emprunts/:id
func (h *EmpruntHandler) GetLoan(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "Identifiant d'emprunt invalide")
	if !ok {
		return
	}

	emprunt, err := h.empruntService.GetLoanByID(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Emprunt récupéré avec succès", model.EmpruntResponse{Emprunt: emprunt})
}

// GetLoansByClient
// GET /api/emprunts/client/:clientId
func (h *EmpruntHandler) GetLoansByClient(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	clientID, ok := parseUUIDParam(c, "clientId", "Identifiant de client invalide")
	if !ok {
		return
	}

	emprunts, err := h.empruntService.GetLoansByClient(c.Request.Context(), clientID, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Emprunts récupérés avec succès", model.EmpruntsResponse{Emprunts: emprunts})
}

// ReturnLoan
// POST /api/emprunts/:id/return
func (h *EmpruntHandler) ReturnLoan(c *gin.Context) {
	req, ok := requester(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id", "Identifiant d'emprunt invalide")
	if !ok {
		return
	}

	res, err := h.empruntService.ReturnLoan(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Livre retourné avec succès", res)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// GetAllLoans
// GET /api/emprunts
func (h *EmpruntHandler) GetAllLoans(c *gin.Context) {
	emprunts, err := h.empruntService.GetAllLoans(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Emprunts récupérés avec succès", model.EmpruntsResponse{Emprunts: emprunts})
}

// UpdateLoan
// PUT /api/emprunts/:id
func (h *EmpruntHandler) UpdateLoan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "Identifiant d'emprunt invalide")
	if !ok {
		return
	}

	var updates map[string]json.RawMessage
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, "Corps de requête invalide")
		return
	}

	emprunt, err := h.empruntService.UpdateLoan(c.Request.Context(), id, updates)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Emprunt mis à jour avec succès", model.EmpruntResponse{Emprunt: emprunt})
}

// DeleteLoan
// DELETE /api/emprunts/:id
func (h *EmpruntHandler) DeleteLoan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id", "Identifiant d'emprunt invalide")
	if !ok {
		return
	}

	emprunt, err := h.empruntService.DeleteLoan(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, "Emprunt supprimé avec succès", model.EmpruntResponse{Emprunt: emprunt})
}
