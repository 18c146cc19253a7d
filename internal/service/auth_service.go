package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/auth"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const referralCodeLength = 8

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	hashCost int
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, hashCost: bcrypt.DefaultCost, now: time.Now}
}

func sanitizeUser(u *model.User) dto.UserSummaryDTO {
	return dto.UserSummaryDTO{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		SubscriptionStatus: u.SubscriptionStatus,
		ReferralCode:       derefString(u.ReferralCode),
		Streak:             u.Streak,
		Points:             u.Points,
	}
}

func (s *authService) issue(u *model.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Sign(u.ID, u.Username)
	if err != nil {
		log.Error().Err(err).Str("userID", u.ID.String()).Msg("Failed to sign token")
		return nil, apperr.Internal("Failed to issue token", err)
	}
	return &dto.AuthResponse{Token: token, User: sanitizeUser(u)}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, apperr.Validation("Missing required fields")
	}

	_, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return nil, apperr.Conflict("User already exists")
	case !apperr.IsNotFound(err):
		log.Error().Err(err).Msg("Register: failed to check existing user")
		return nil, apperr.Internal("Failed to register", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperr.Internal("Failed to register", err)
	}
	code, err := gonanoid.New(referralCodeLength)
	if err != nil {
		return nil, apperr.Internal("Failed to register", err)
	}

	trialStart := s.now().UTC()
	user := &model.User{
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		SubscriptionStatus: model.SubscriptionTrial,
		TrialStartDate:     &trialStart,
		ReferralCode:       &code,
		ReferredBy:         stringPtr(strings.TrimSpace(req.ReferralCode)),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		log.Error().Err(err).Str("username", username).Msg("Register: failed to create user")
		return nil, apperr.Internal("Failed to register", err)
	}
	log.Info().Str("userID", user.ID.String()).Msg("User registered")
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.TrimSpace(req.EmailOrUsername)
	if identifier == "" || req.Password == "" {
		return nil, apperr.Validation("Missing credentials")
	}

	user, err := s.userRepo.FindByEmailOrUsername(ctx, strings.ToLower(identifier), identifier)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		log.Error().Err(err).Msg("Login: failed to load user")
		return nil, apperr.Internal("Failed to login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return s.issue(user)
}
