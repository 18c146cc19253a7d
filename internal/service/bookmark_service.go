package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
)

type BookmarkService interface {
	Add(ctx context.Context, userID uuid.UUID, rawArticleID string) (*dto.BookmarkIDsResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, rawArticleID string) (*dto.BookmarkIDsResponse, error)
	List(ctx context.Context, userID uuid.UUID) (*dto.BookmarkListResponse, error)
}

type bookmarkService struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
}

func NewBookmarkService(userRepo repository.UserRepository, articleRepo repository.ArticleRepository) BookmarkService {
	return &bookmarkService{userRepo: userRepo, articleRepo: articleRepo}
}

func (s *bookmarkService) ids(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	articles, err := s.userRepo.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to load bookmarks", err)
	}
	ids := make([]uuid.UUID, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (s *bookmarkService) Add(ctx context.Context, userID uuid.UUID, rawArticleID string) (*dto.BookmarkIDsResponse, error) {
	articleID, err := ParseID(rawArticleID, "article")
	if err != nil {
		return nil, err
	}
	if _, err := s.articleRepo.FindByID(ctx, articleID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Article not found")
		}
		return nil, apperr.Internal("Failed to add bookmark", err)
	}

	exists, err := s.userRepo.HasBookmark(ctx, userID, articleID)
	if err != nil {
		return nil, apperr.Internal("Failed to add bookmark", err)
	}
	if exists {
		return nil, apperr.Validation("Already bookmarked")
	}
	if err := s.userRepo.AddBookmark(ctx, userID, articleID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("Already bookmarked")
		}
		log.Error().Err(err).Str("userID", userID.String()).Str("articleID", articleID.String()).Msg("Failed to add bookmark")
		return nil, apperr.Internal("Failed to add bookmark", err)
	}

	ids, err := s.ids(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BookmarkIDsResponse{Message: "Bookmark added", Bookmarks: ids}, nil
}

func (s *bookmarkService) Remove(ctx context.Context, userID uuid.UUID, rawArticleID string) (*dto.BookmarkIDsResponse, error) {
	articleID, err := ParseID(rawArticleID, "article")
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveBookmark(ctx, userID, articleID); err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Str("articleID", articleID.String()).Msg("Failed to remove bookmark")
		return nil, apperr.Internal("Failed to remove bookmark", err)
	}
	ids, err := s.ids(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BookmarkIDsResponse{Message: "Bookmark removed", Bookmarks: ids}, nil
}

func (s *bookmarkService) List(ctx context.Context, userID uuid.UUID) (*dto.BookmarkListResponse, error) {
	articles, err := s.userRepo.ListBookmarks(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Failed to list bookmarks")
		return nil, apperr.Internal("Failed to load bookmarks", err)
	}
	dtos, err := toArticleDTOs(articles)
	if err != nil {
		return nil, err
	}
	return &dto.BookmarkListResponse{Bookmarks: dtos}, nil
}
