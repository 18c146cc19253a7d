package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/auth"
	"github.com/lshigami/Editorly/internal/controller"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
)

const currentUserKey = "currentUser"

// Authenticator verifies bearer tokens and attaches the user to the request.
type Authenticator struct {
	tokens   *auth.TokenManager
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthenticator(tokens *auth.TokenManager, userRepo repository.UserRepository, cfg *config.Config) *Authenticator {
	return &Authenticator{tokens: tokens, userRepo: userRepo, cfg: cfg}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func (a *Authenticator) authenticate(ctx *gin.Context, token string) (*model.User, error) {
	userID, _, err := a.tokens.Parse(token)
	if err != nil {
		return nil, apperr.Unauthorized("Token invalid or expired")
	}
	user, err := a.userRepo.FindByID(ctx.Request.Context(), userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid token - user not found")
		}
		return nil, apperr.Internal("Failed to authenticate", err)
	}
	return user, nil
}

// requireUser resolves the bearer user or writes the 401 and aborts.
func (a *Authenticator) requireUser(ctx *gin.Context) (*model.User, bool) {
	token, ok := bearerToken(ctx)
	if !ok {
		controller.RespondError(ctx, apperr.Unauthorized("Missing or invalid token"))
		return nil, false
	}
	user, err := a.authenticate(ctx, token)
	if err != nil {
		controller.RespondError(ctx, err)
		return nil, false
	}
	ctx.Set(currentUserKey, user)
	return user, true
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := a.requireUser(ctx); !ok {
			return
		}
		ctx.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and otherwise
// lets the request through untouched.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, ok := bearerToken(ctx); ok {
			if user, err := a.authenticate(ctx, token); err == nil {
				ctx.Set(currentUserKey, user)
			} else {
				log.Debug().Err(err).Msg("Ignoring invalid optional token")
			}
		}
		ctx.Next()
	}
}

// RequireAdmin guards the admin surface. It is a pass-through unless
// ADMIN_AUTH_REQUIRED is set.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !a.cfg.Admin.AuthRequired {
			ctx.Next()
			return
		}
		user, ok := a.requireUser(ctx)
		if !ok {
			return
		}
		if !user.HasRole(model.RoleAdmin) {
			controller.RespondError(ctx, apperr.Forbidden("Admin access required"))
			return
		}
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) *model.User {
	v, ok := ctx.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// CurrentUserID returns nil when the request is anonymous.
func CurrentUserID(ctx *gin.Context) *uuid.UUID {
	if user := CurrentUser(ctx); user != nil {
		id := user.ID
		return &id
	}
	return nil
}
