package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/livre/repository"
	"library-backend/internal/domains/livre/service"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLivreHandler(service.NewLivreService(repository.NewMemoryLivreRepository()))

	r := gin.New()
	r.GET("/livres", h.ListLivres)
	r.POST("/livres", h.CreateLivre)
	r.GET("/livres/:id", h.GetLivre)
	r.PUT("/livres/:id", h.UpdateLivre)
	r.DELETE("/livres/:id", h.DeleteLivre)
	r.GET("/livres/:id/disponibilite", h.CheckDisponibilite)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestLivreHandler_CreateGetAvailability(t *testing.T) {
	r := newRouter()

	code, env := do(t, r, http.MethodPost, "/livres", map[string]interface{}{
		"isbn": "9782070409228", "titre": "Germinal", "auteur": "Émile Zola", "quantite": 1,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	var created struct {
		ID       string `json:"_id"`
		Quantite int    `json:"quantite"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 1, created.Quantite)

	code, _ = do(t, r, http.MethodGet, "/livres/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/livres/"+created.ID+"/disponibilite", nil)
	require.Equal(t, http.StatusOK, code)
	var dispo struct {
		Disponible bool `json:"disponible"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dispo))
	assert.True(t, dispo.Disponible)
}

func TestLivreHandler_Errors(t *testing.T) {
	r := newRouter()

	code, env := do(t, r, http.MethodGet, "/livres/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	code, _ = do(t, r, http.MethodGet, "/livres/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodPost, "/livres", map[string]interface{}{"titre": "Sans ISBN"})
	assert.Equal(t, http.StatusBadRequest, code)

	body := map[string]interface{}{"isbn": "9782070409228", "titre": "Germinal", "auteur": "Zola"}
	code, _ = do(t, r, http.MethodPost, "/livres", body)
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, r, http.MethodPost, "/livres", body)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodGet, "/livres?categorie=nope", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLivreHandler_ListAndDelete(t *testing.T) {
	r := newRouter()
	for _, b := range []map[string]interface{}{
		{"isbn": "9782070409228", "titre": "Germinal", "auteur": "Zola"},
		{"isbn": "9782253004226", "titre": "Nana", "auteur": "Zola"},
	} {
		code, _ := do(t, r, http.MethodPost, "/livres", b)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := do(t, r, http.MethodGet, "/livres?q=nan&limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Livres []struct {
			ID    string `json:"_id"`
			Titre string `json:"titre"`
		} `json:"livres"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Nana", list.Livres[0].Titre)

	code, _ = do(t, r, http.MethodDelete, "/livres/"+list.Livres[0].ID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodDelete, "/livres/"+list.Livres[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
