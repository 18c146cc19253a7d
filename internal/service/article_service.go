package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultArticleLimit = 10
	maxArticleLimit     = 100
)

type ArticleService interface {
	Create(ctx context.Context, authorID *uuid.UUID, req dto.CreateArticleRequest) (*dto.ArticleMutationResponse, error)
	Get(ctx context.Context, rawID string) (*dto.ArticleDTO, error)
	List(ctx context.Context, page, limit int) (*dto.ArticleListResponse, error)
	Search(ctx context.Context, query string) (*dto.ArticleSearchResponse, error)
	Update(ctx context.Context, rawID string, req dto.UpdateArticleRequest) (*dto.ArticleMutationResponse, error)
	Delete(ctx context.Context, rawID string) (*dto.MessageResponse, error)
}

type articleService struct {
	db          *gorm.DB
	articleRepo repository.ArticleRepository
}

func NewArticleService(db *gorm.DB, articleRepo repository.ArticleRepository) ArticleService {
	return &articleService{db: db, articleRepo: articleRepo}
}

func toArticleDTO(a *model.Article) (dto.ArticleDTO, error) {
	var out dto.ArticleDTO
	if err := copier.Copy(&out, a); err != nil {
		return out, apperr.Internal("Error preparing article response", err)
	}
	if out.BulletPoints == nil {
		out.BulletPoints = []string{}
	}
	return out, nil
}

func toArticleDTOs(articles []model.Article) ([]dto.ArticleDTO, error) {
	out := make([]dto.ArticleDTO, 0, len(articles))
	for i := range articles {
		d, err := toArticleDTO(&articles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *articleService) load(ctx context.Context, rawID string) (*model.Article, error) {
	id, err := ParseID(rawID, "article")
	if err != nil {
		return nil, err
	}
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("Article not found")
		}
		return nil, apperr.Internal("Failed to load article", err)
	}
	return article, nil
}

func (s *articleService) Create(ctx context.Context, authorID *uuid.UUID, req dto.CreateArticleRequest) (*dto.ArticleMutationResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}
	article := &model.Article{
		Title:        title,
		Source:       strings.TrimSpace(req.Source),
		Link:         stringPtr(strings.TrimSpace(req.Link)),
		Description:  req.Description,
		Category:     req.Category,
		Image:        stringPtr(strings.TrimSpace(req.Image)),
		PubDate:      req.PubDate,
		BulletPoints: datatypes.JSONSlice[string](req.BulletPoints),
		AIAnswer:     req.AIAnswer,
		CreatedBy:    authorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		if apperr.IsDuplicateKey(err) {
			return nil, apperr.Conflict("An article with this link already exists")
		}
		log.Error().Err(err).Str("title", title).Msg("Failed to create article")
		return nil, apperr.Internal("Failed to create article", err)
	}
	out, err := toArticleDTO(article)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleMutationResponse{Message: "Article created", Article: out}, nil
}

func (s *articleService) Get(ctx context.Context, rawID string) (*dto.ArticleDTO, error) {
	article, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	out, err := toArticleDTO(article)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *articleService) List(ctx context.Context, page, limit int) (*dto.ArticleListResponse, error) {
	page, limit = normalizePage(page, limit, defaultArticleLimit, maxArticleLimit)
	articles, total, err := s.articleRepo.List(ctx, offsetFor(page, limit), limit)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("Failed to list articles")
		return nil, apperr.Internal("Failed to list articles", err)
	}
	dtos, err := toArticleDTOs(articles)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleListResponse{Total: total, Page: page, Pages: totalPages(total, limit), Articles: dtos}, nil
}

func (s *articleService) Search(ctx context.Context, query string) (*dto.ArticleSearchResponse, error) {
	articles, err := s.articleRepo.SearchByTitle(ctx, strings.TrimSpace(query))
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Article search failed")
		return nil, apperr.Internal("Failed to search articles", err)
	}
	dtos, err := toArticleDTOs(articles)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleSearchResponse{Total: len(dtos), Articles: dtos}, nil
}

func (s *articleService) Update(ctx context.Context, rawID string, req dto.UpdateArticleRequest) (*dto.ArticleMutationResponse, error) {
	article, err := s.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperr.Validation("Title cannot be empty")
		}
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Source != nil {
		article.Source = *req.Source
	}
	if req.Link != nil {
		article.Link = stringPtr(strings.TrimSpace(*req.Link))
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Category != nil {
		article.Category = *req.Category
	}
	if req.Image != nil {
		article.Image = stringPtr(strings.TrimSpace(*req.Image))
	}
	if req.PubDate != nil {
		article.PubDate = req.PubDate
	}
	if req.BulletPoints != nil {
		article.BulletPoints = req.BulletPoints
	}
	if req.AIAnswer != nil {
		article.AIAnswer = *req.AIAnswer
	}
	if err := s.articleRepo.Update(ctx, article); err != nil {
		if apperr.IsDuplicateKey(err) {
			return nil, apperr.Conflict("An article with this link already exists")
		}
		log.Error().Err(err).Str("articleID", article.ID.String()).Msg("Failed to update article")
		return nil, apperr.Internal("Failed to update article", err)
	}
	out, err := toArticleDTO(article)
	if err != nil {
		return nil, err
	}
	return &dto.ArticleMutationResponse{Message: "Article updated", Article: out}, nil
}

// Delete also drops bookmarks and the question bank of the article. Past
// attempts stay for analytics.
func (s *articleService) Delete(ctx context.Context, rawID string) (*dto.MessageResponse, error) {
	id, err := ParseID(rawID, "article")
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{id}
		if _, err := repository.NewUserRepository(tx).DeleteBookmarksByArticles(ctx, ids); err != nil {
			return err
		}
		if _, err := repository.NewQuestionRepository(tx).DeleteByContent(ctx, model.ContentArticle, ids); err != nil {
			return err
		}
		deleted, err := repository.NewArticleRepository(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperr.NotFound("Article not found")
		}
		return nil
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		log.Error().Err(err).Str("articleID", id.String()).Msg("Failed to delete article")
		return nil, apperr.Internal("Failed to delete article", err)
	}
	return &dto.MessageResponse{Message: "Article deleted"}, nil
}
