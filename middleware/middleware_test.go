package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gallery-store/internal/auth"
	"gallery-store/pkg/ctxmanage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *auth.Keys) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	k, err := auth.NewKeys([]byte("test-secret"))
	require.NoError(t, err)
	m, err := NewMid(k)
	require.NoError(t, err)

	r := gin.New()
	r.Use(Logger())
	g := r.Group("/")
	g.Use(Logger(), m.Authentication())
	g.GET("/admin", m.Authorize(func(c *gin.Context) { c.Status(http.StatusNoContent) }, auth.RoleAdmin))
	g.GET("/any", m.Authorize(func(c *gin.Context) {
		claims := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
		c.String(http.StatusOK, claims.Subject)
	}))
	r.GET("/trace", func(c *gin.Context) {
		c.String(http.StatusOK, ctxmanage.GetTraceIdOfRequest(c))
	})
	return r, k
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewMid_NilKeys(t *testing.T) {
	_, err := NewMid(nil)
	assert.Error(t, err)
}

func TestLogger_SetsTraceID(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, "/trace", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "Unknown", w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(TraceIDHeader))
}

func TestAuthentication(t *testing.T) {
	r, k := newRouter(t)
	userToken, err := k.GenerateToken(2, []string{auth.RoleUser}, time.Hour)
	require.NoError(t, err)
	adminToken, err := k.GenerateToken(1, []string{auth.RoleUser, auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	expired, err := k.GenerateToken(1, []string{auth.RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"missing header", "/any", "", http.StatusUnauthorized},
		{"garbage token", "/any", "not-a-jwt", http.StatusUnauthorized},
		{"expired token", "/admin", expired, http.StatusUnauthorized},
		{"any role", "/any", userToken, http.StatusOK},
		{"user on admin route", "/admin", userToken, http.StatusForbidden},
		{"admin on admin route", "/admin", adminToken, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.path, tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAuthentication_ExposesClaims(t *testing.T) {
	r, k := newRouter(t)
	token, err := k.GenerateToken(42, []string{auth.RoleUser}, time.Hour)
	require.NoError(t, err)

	w := do(r, "/any", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}
