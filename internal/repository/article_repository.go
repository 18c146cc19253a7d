package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Article, error)
	List(ctx context.Context, offset, limit int) ([]model.Article, int64, error)
	SearchByTitle(ctx context.Context, query string) ([]model.Article, error)
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// ExistingLinks returns the subset of links already stored.
	ExistingLinks(ctx context.Context, links []string) (map[string]struct{}, error)
	// InsertIgnoringDuplicates inserts in batches, skipping rows whose link
	// already exists, and reports how many rows were written.
	InsertIgnoringDuplicates(ctx context.Context, articles []model.Article) (int64, error)

	FindIDsByCreator(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Articles with an image come first, then newest.
const articleListOrder = "CASE WHEN image IS NULL OR image = '' THEN 1 ELSE 0 END, created_at DESC, id DESC"

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Article, error) {
	var articles []model.Article
	if len(ids) == 0 {
		return articles, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error
	return articles, err
}

func (r *articleRepository) List(ctx context.Context, offset, limit int) ([]model.Article, int64, error) {
	var (
		articles []model.Article
		total    int64
	)
	if err := r.db.WithContext(ctx).Model(&model.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Order(articleListOrder).Offset(offset).Limit(limit).Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) SearchByTitle(ctx context.Context, query string) ([]model.Article, error) {
	var articles []model.Article
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("created_at DESC").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *articleRepository) ExistingLinks(ctx context.Context, links []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(links))
	if len(links) == 0 {
		return existing, nil
	}
	var found []string
	err := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("link IN ?", links).
		Pluck("link", &found).Error
	if err != nil {
		return nil, err
	}
	for _, link := range found {
		existing[link] = struct{}{}
	}
	return existing, nil
}

func (r *articleRepository) InsertIgnoringDuplicates(ctx context.Context, articles []model.Article) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "link"}}, DoNothing: true}).
		CreateInBatches(&articles, 100)
	return res.RowsAffected, res.Error
}

func (r *articleRepository) FindIDsByCreator(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("created_by = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *articleRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Article{})
	return res.RowsAffected, res.Error
}
