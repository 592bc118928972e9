package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/config"
	"feedback_backend/internal/email"
	"feedback_backend/internal/models"
	"feedback_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type serverEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *email.MockProvider
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mail := email.NewMockProvider()
	registry := services.NewRegistry(db, tokens, mail)

	router, err := SetupRouter(tokens, registry)
	require.NoError(t, err)

	return &serverEnv{router: router, db: db, mail: mail}
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func (e *serverEnv) post(t *testing.T, query, bearer string) (*httptest.ResponseRecorder, *gqlResponse) {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp gqlResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, &resp
}

func TestHealthz(t *testing.T) {
	env := newServerEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMalformedBodyRejected(t *testing.T) {
	env := newServerEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndToEndAuthFlow(t *testing.T) {
	env := newServerEnv(t)

	rec, resp := env.post(t, `mutation {
		register(name: "Alice", email: "alice@test.com", password: "password123") { id }
	}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, resp.Errors)

	require.Eventually(t, func() bool {
		return env.mail.LastFor("alice@test.com") != nil
	}, time.Second, 10*time.Millisecond)
	verifyToken := env.mail.LastFor("alice@test.com").Token

	_, resp = env.post(t, `mutation { verifyEmail(token: "`+verifyToken+`") }`, "")
	require.Empty(t, resp.Errors)

	_, resp = env.post(t, `mutation {
		login(email: "alice@test.com", password: "password123") { token }
	}`, "")
	require.Empty(t, resp.Errors)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["login"], &payload))
	require.NotEmpty(t, payload.Token)

	// The bearer token resolves to an identity for guarded operations.
	_, resp = env.post(t, `{ me { email } }`, payload.Token)
	require.Empty(t, resp.Errors)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["me"], &me))
	assert.Equal(t, "alice@test.com", me.Email)

	// Without the token the same query is rejected inside the response,
	// never as a transport error.
	rec, resp = env.post(t, `{ me { email } }`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "UNAUTHORIZED", resp.Errors[0].Extensions["code"])
}

func TestInvalidBearerTreatedAsAnonymous(t *testing.T) {
	env := newServerEnv(t)

	rec, resp := env.post(t, `{ products { id } }`, "garbage-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Errors)
}

func TestSeedFirstAdmin(t *testing.T) {
	env := newServerEnv(t)

	cfg := &config.Config{}
	cfg.Admin.Email = "admin@test.com"
	cfg.Admin.Password = "admin-password"
	require.NoError(t, seedFirstAdmin(env.db, cfg))

	var admin models.User
	require.NoError(t, env.db.First(&admin, "email = ?", cfg.Admin.Email).Error)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
	assert.True(t, admin.IsVerified)

	// Seeding again is a no-op.
	require.NoError(t, seedFirstAdmin(env.db, cfg))
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
