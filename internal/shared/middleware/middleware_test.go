package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(manager *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery())

	handlers := append([]gin.HandlerFunc{AuthMiddleware(manager)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, role, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role, "ok": ok})
	})
	r.GET("/protected", handlers...)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("s", time.Hour))

	w := doGet(r, "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := envelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("s", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("s", time.Hour))

	w := doGet(r, "/protected", "not.a.token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NonUUIDSubject(t *testing.T) {
	m := jwt.NewManager("s", time.Hour)
	token, err := m.GenerateAccessToken("42", "a@b.c", "client")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(m), "/protected", token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	m := jwt.NewManager("s", time.Hour)
	userID := uuid.New()
	token, err := m.GenerateAccessToken(userID.String(), "a@b.c", "client")
	require.NoError(t, err)

	w := doGet(newProtectedRouter(m), "/protected", token)

	require.Equal(t, http.StatusOK, w.Code)
	body := envelope(t, w)
	assert.Equal(t, userID.String(), body["id"])
	assert.Equal(t, "client", body["role"])
	assert.Equal(t, true, body["ok"])
}

func TestAdminMiddleware(t *testing.T) {
	m := jwt.NewManager("s", time.Hour)
	r := newProtectedRouter(m, AdminMiddleware())

	clientToken, err := m.GenerateAccessToken(uuid.NewString(), "c@b.c", "client")
	require.NoError(t, err)
	adminToken, err := m.GenerateAccessToken(uuid.NewString(), "a@b.c", RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/protected", clientToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/protected", adminToken).Code)
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("s", time.Hour))

	w := doGet(r, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := envelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}
