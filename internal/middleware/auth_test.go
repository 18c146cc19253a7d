package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/auth"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/lshigami/Editorly/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fixture struct {
	router *gin.Engine
	tokens *auth.TokenManager
	users  repository.UserRepository
}

func newFixture(t *testing.T, adminRequired bool) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWT:   config.JWT{Secret: "middleware-secret", ExpiresIn: time.Hour},
		Admin: config.Admin{AuthRequired: adminRequired},
	}
	tokens, err := auth.NewTokenManager(cfg)
	require.NoError(t, err)
	users := repository.NewUserRepository(testutil.NewDB(t))
	authn := NewAuthenticator(tokens, users, cfg)

	r := gin.New()
	whoami := func(ctx *gin.Context) {
		name := "anonymous"
		if u := CurrentUser(ctx); u != nil {
			name = u.Username
		}
		ctx.JSON(http.StatusOK, gin.H{"user": name})
	}
	r.GET("/private", authn.RequireAuth(), whoami)
	r.GET("/optional", authn.OptionalAuth(), whoami)
	r.GET("/admin", authn.RequireAdmin(), whoami)
	return &fixture{router: r, tokens: tokens, users: users}
}

func (f *fixture) user(t *testing.T, name string, roles ...string) (*model.User, string) {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Roles: datatypes.JSONSlice[string](roles)}
	require.NoError(t, f.users.Create(context.Background(), u))
	token, err := f.tokens.Sign(u.ID, u.Username)
	require.NoError(t, err)
	return u, token
}

func (f *fixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Message
}

func TestRequireAuth(t *testing.T) {
	f := newFixture(t, false)
	_, token := f.user(t, "kiran")

	w := f.get("/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"kiran"}`, w.Body.String())

	w = f.get("/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing or invalid token", errorMessage(t, w))

	w = f.get("/private", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token invalid or expired", errorMessage(t, w))

	ghost, err := f.tokens.Sign(uuid.New(), "ghost")
	require.NoError(t, err)
	w = f.get("/private", ghost)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token - user not found", errorMessage(t, w))
}

func TestOptionalAuth(t *testing.T) {
	f := newFixture(t, false)
	_, token := f.user(t, "lata")

	assert.JSONEq(t, `{"user":"lata"}`, f.get("/optional", token).Body.String())
	assert.JSONEq(t, `{"user":"anonymous"}`, f.get("/optional", "").Body.String())
	assert.JSONEq(t, `{"user":"anonymous"}`, f.get("/optional", "garbage").Body.String())
}

func TestRequireAdminOpenByDefault(t *testing.T) {
	f := newFixture(t, false)
	w := f.get("/admin", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminWhenEnabled(t *testing.T) {
	f := newFixture(t, true)
	_, userToken := f.user(t, "plain")
	_, adminToken := f.user(t, "boss", model.RoleUser, model.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, f.get("/admin", "").Code)

	w := f.get("/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", errorMessage(t, w))

	w = f.get("/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"boss"}`, w.Body.String())
}
