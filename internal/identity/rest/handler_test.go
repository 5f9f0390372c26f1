package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/domain"
	"github.com/dwikikusuma/rajah-storefront/internal/identity/infra/kv"
	"github.com/dwikikusuma/rajah-storefront/pkg/httpx"
	"github.com/dwikikusuma/rajah-storefront/pkg/kvstore"
	"github.com/dwikikusuma/rajah-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accounts map[string]domain.Account

func (a accounts) ByEmail(_ context.Context, email string) (domain.Account, error) {
	acct, ok := a[email]
	if !ok {
		return domain.Account{}, app.ErrUnknownAccount
	}
	return acct, nil
}

type noopCarts struct{}

func (noopCarts) Clear(context.Context, string) error { return nil }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := app.HashPassword("pw")
	require.NoError(t, err)
	svc := app.NewService(
		app.NewBcryptVerifier(accounts{"amir@example.com": {ID: "u1", Email: "amir@example.com", PasswordHash: hash}}),
		app.NewTokenManager(app.TokenConfig{Secret: "k", TTL: time.Hour}),
		kv.NewSessionStore(kvstore.NewMemory()),
		noopCarts{},
		logger.Discard(),
	)

	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).Register(api)
	api.GET("/me", RequireUser(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": httpx.UserID(c)})
	})
	return r
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignInFlow(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/auth/sign-in", "", gin.H{"email": "amir@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sess domain.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.Token)

	w = do(r, http.MethodGet, "/api/me", sess.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"u1"}`, w.Body.String())

	w = do(r, http.MethodPost, "/api/auth/sign-out", sess.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/me", sess.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInErrors(t *testing.T) {
	r := newRouter(t)

	t.Run("wrong password -> 401", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/auth/sign-in", "", gin.H{"email": "amir@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), httpx.CodeUnauthenticated)
	})

	t.Run("missing body -> 400", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/auth/sign-in", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no bearer -> 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/me", "", nil).Code)
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/auth/sign-out", "", nil).Code)
	})
}
