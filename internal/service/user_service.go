package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserService interface {
	Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	// ResetAccount deletes the user with everything they own or produced.
	ResetAccount(ctx context.Context, rawUserID string) (*dto.ResetUserResponse, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to load profile", err)
	}
	roles := []string(u.Roles)
	if roles == nil {
		roles = []string{}
	}
	return &dto.ProfileResponse{
		Message: "Welcome to your profile",
		User: dto.ProfileDTO{
			ID:                 u.ID,
			Username:           u.Username,
			Email:              u.Email,
			SubscriptionStatus: u.SubscriptionStatus,
			TrialStartDate:     u.TrialStartDate,
			ReferralCode:       derefString(u.ReferralCode),
			ReferredBy:         derefString(u.ReferredBy),
			Streak:             u.Streak,
			Points:             u.Points,
			LastActiveAt:       u.LastActiveAt,
			Roles:              roles,
		},
	}, nil
}

func (s *userService) ResetAccount(ctx context.Context, rawUserID string) (*dto.ResetUserResponse, error) {
	userID, err := ParseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}

	var counts dto.DeletedCountsDTO
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		articles := repository.NewArticleRepository(tx)
		editorials := repository.NewEditorialRepository(tx)
		questions := repository.NewQuestionRepository(tx)
		attempts := repository.NewAttemptRepository(tx)
		evaluations := repository.NewEvaluationRepository(tx)

		if _, err := users.FindByID(ctx, userID); err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("User not found")
			}
			return err
		}

		articleIDs, err := articles.FindIDsByCreator(ctx, userID)
		if err != nil {
			return err
		}
		editorialIDs, err := editorials.FindIDsByCreator(ctx, userID)
		if err != nil {
			return err
		}

		n, err := attempts.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		counts.MCQAttempts += n
		for contentType, ids := range map[model.ContentType][]uuid.UUID{
			model.ContentArticle:   articleIDs,
			model.ContentEditorial: editorialIDs,
		} {
			if n, err = attempts.DeleteByContent(ctx, contentType, ids); err != nil {
				return err
			}
			counts.MCQAttempts += n
			if n, err = questions.DeleteByContent(ctx, contentType, ids); err != nil {
				return err
			}
			counts.MCQs += n
		}

		if n, err = users.DeleteBookmarksByUser(ctx, userID); err != nil {
			return err
		}
		counts.Bookmarks += n
		if n, err = users.DeleteBookmarksByArticles(ctx, articleIDs); err != nil {
			return err
		}
		counts.Bookmarks += n

		if counts.Evaluations, err = evaluations.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if counts.Articles, err = articles.DeleteByIDs(ctx, articleIDs); err != nil {
			return err
		}
		if counts.Editorials, err = editorials.DeleteByIDs(ctx, editorialIDs); err != nil {
			return err
		}
		_, err = users.Delete(ctx, userID)
		return err
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, err
		}
		log.Error().Err(err).Str("userID", userID.String()).Msg("Account reset failed")
		return nil, apperr.Internal("Failed to reset user account", err)
	}

	log.Info().Str("userID", userID.String()).Interface("deleted", counts).Msg("User account reset")
	return &dto.ResetUserResponse{
		Message:       "User account and related data deleted successfully",
		DeletedCounts: counts,
	}, nil
}
