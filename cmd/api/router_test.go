package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	clientModel "library-backend/internal/domains/client/model"
	"library-backend/pkg/container"
)

type apiEnv struct {
	t      *testing.T
	c      *container.Container
	router *gin.Engine
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test", Version: "test"},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Redis:   config.RedisConfig{BookTTL: time.Minute},
		JWT:     config.JWTConfig{Secret: "router-secret", AccessTokenExpiry: 60},
		Loan:    config.LoanConfig{DurationDays: 14},
	}
	c, err := container.NewContainerWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return &apiEnv{t: t, c: c, router: SetupRouter(c)}
}

func (e *apiEnv) account(email, role string) (uuid.UUID, string) {
	e.t.Helper()
	cl, err := e.c.ClientService.CreateClient(context.Background(), clientModel.CreateClientRequest{
		Nom: "Test", Email: email, Password: "motdepasse123", Role: role,
	})
	require.NoError(e.t, err)
	tok, err := e.c.JWTManager.GenerateAccessToken(cl.ID.String(), cl.Email, cl.Role)
	require.NoError(e.t, err)
	return cl.ID, tok
}

func (e *apiEnv) call(method, path, token string, body interface{}) (int, map[string]json.RawMessage) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]json.RawMessage
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func dataField(t *testing.T, out map[string]json.RawMessage, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(out["data"], dest))
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	code, out := api.call(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Services map[string]string `json:"services"`
	}
	dataField(t, out, &data)
	assert.Equal(t, "memory", data.Services["database"])
	assert.Equal(t, "ok", data.Services["cache"])
}

func TestNoRoute(t *testing.T) {
	api := newAPI(t)

	code, out := api.call(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "false", string(out["success"]))
}

func TestLoanFlowThroughRouter(t *testing.T) {
	api := newAPI(t)
	_, adminTok := api.account("admin@example.com", "admin")
	c1, c1Tok := api.account("c1@example.com", "client")
	_, c2Tok := api.account("c2@example.com", "client")

	code, _ := api.call(http.MethodPost, "/api/livres", c1Tok, map[string]interface{}{
		"isbn": "9782070409228", "titre": "Germinal", "auteur": "Zola", "quantite": 1,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, out := api.call(http.MethodPost, "/api/livres", adminTok, map[string]interface{}{
		"isbn": "9782070409228", "titre": "Germinal", "auteur": "Zola", "quantite": 1,
	})
	require.Equal(t, http.StatusCreated, code)
	var livre struct {
		ID string `json:"_id"`
	}
	dataField(t, out, &livre)

	code, out = api.call(http.MethodPost, "/api/emprunts/"+livre.ID, c1Tok, nil)
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		Emprunt struct {
			ID     string `json:"_id"`
			Statut string `json:"statut"`
		} `json:"emprunt"`
	}
	dataField(t, out, &created)
	loan := created.Emprunt
	assert.Equal(t, "en cours", loan.Statut)

	code, _ = api.call(http.MethodPost, "/api/emprunts/"+livre.ID, c2Tok, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, out = api.call(http.MethodGet, "/api/livres/"+livre.ID+"/disponibilite", "", nil)
	require.Equal(t, http.StatusOK, code)
	var dispo struct {
		Disponible bool `json:"disponible"`
		Quantite   int  `json:"quantite"`
	}
	dataField(t, out, &dispo)
	assert.False(t, dispo.Disponible)

	code, _ = api.call(http.MethodGet, "/api/emprunts/client/"+c1.String(), c2Tok, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, out = api.call(http.MethodGet, "/api/emprunts/client/"+c1.String(), c1Tok, nil)
	require.Equal(t, http.StatusOK, code)
	var mine struct {
		Emprunts []struct {
			ID string `json:"_id"`
		} `json:"emprunts"`
	}
	dataField(t, out, &mine)
	require.Len(t, mine.Emprunts, 1)
	assert.Equal(t, loan.ID, mine.Emprunts[0].ID)

	code, _ = api.call(http.MethodPost, "/api/emprunts/"+loan.ID+"/return", c1Tok, nil)
	require.Equal(t, http.StatusOK, code)

	code, out = api.call(http.MethodGet, "/api/livres/"+livre.ID+"/disponibilite", "", nil)
	require.Equal(t, http.StatusOK, code)
	dataField(t, out, &dispo)
	assert.True(t, dispo.Disponible)
	assert.Equal(t, 1, dispo.Quantite)

	code, _ = api.call(http.MethodPost, "/api/clients/wishlist/"+livre.ID, c2Tok, nil)
	assert.Equal(t, http.StatusOK, code)
}
