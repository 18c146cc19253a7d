package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/auth"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, r *repos) (AuthService, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager(&config.Config{JWT: config.JWT{Secret: "test-secret", ExpiresIn: time.Hour}})
	require.NoError(t, err)
	svc := NewAuthService(r.users, tokens).(*authService)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func TestRegisterStartsTrial(t *testing.T) {
	r := newRepos(t)
	svc, tokens := newAuthService(t, r)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username:     "meera",
		Email:        "Meera@Example.com",
		Password:     "secret1",
		ReferralCode: "FRIEND42",
	})
	require.NoError(t, err)
	assert.Equal(t, "meera", resp.User.Username)
	assert.Equal(t, "meera@example.com", resp.User.Email)
	assert.Equal(t, model.SubscriptionTrial, resp.User.SubscriptionStatus)
	assert.Len(t, resp.User.ReferralCode, 8)

	id, _, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)

	stored, err := r.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, stored.ReferredBy)
	assert.Equal(t, "FRIEND42", *stored.ReferredBy)
	assert.NotNil(t, stored.TrialStartDate)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, stored.HasRole(model.RoleUser))
}

func TestRegisterDuplicate(t *testing.T) {
	r := newRepos(t)
	svc, _ := newAuthService(t, r)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "neil", Email: "neil@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "neil", Email: "other@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.From(err).StatusCode())
	assert.Equal(t, "User already exists", apperr.From(err).Message)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "", Email: "x@example.com", Password: "p"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestLogin(t *testing.T) {
	r := newRepos(t)
	svc, _ := newAuthService(t, r)
	ctx := context.Background()
	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "omar", Email: "omar@example.com", Password: "secret1"})
	require.NoError(t, err)

	byEmail, err := svc.Login(ctx, dto.LoginRequest{EmailOrUsername: "OMAR@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "omar", byEmail.User.Username)

	byName, err := svc.Login(ctx, dto.LoginRequest{EmailOrUsername: "omar", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, byName.Token)

	_, err = svc.Login(ctx, dto.LoginRequest{EmailOrUsername: "omar", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, apperr.From(err).StatusCode())
	assert.Equal(t, "Invalid credentials", apperr.From(err).Message)

	_, err = svc.Login(ctx, dto.LoginRequest{EmailOrUsername: "nobody", Password: "secret1"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}
