package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
)

type EditorialRepository interface {
	Create(ctx context.Context, editorial *model.Editorial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Editorial, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Editorial, error)
	List(ctx context.Context, offset, limit int) ([]model.Editorial, int64, error)
	Update(ctx context.Context, editorial *model.Editorial) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindIDsByCreator(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type editorialRepository struct {
	db *gorm.DB
}

func NewEditorialRepository(db *gorm.DB) EditorialRepository {
	return &editorialRepository{db: db}
}

func (r *editorialRepository) Create(ctx context.Context, editorial *model.Editorial) error {
	return r.db.WithContext(ctx).Create(editorial).Error
}

func (r *editorialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Editorial, error) {
	var editorial model.Editorial
	if err := r.db.WithContext(ctx).First(&editorial, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &editorial, nil
}

func (r *editorialRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Editorial, error) {
	var editorials []model.Editorial
	if len(ids) == 0 {
		return editorials, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&editorials).Error
	return editorials, err
}

func (r *editorialRepository) List(ctx context.Context, offset, limit int) ([]model.Editorial, int64, error) {
	var (
		editorials []model.Editorial
		total      int64
	)
	if err := r.db.WithContext(ctx).Model(&model.Editorial{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Order("inserted_at DESC, id DESC").Offset(offset).Limit(limit).Find(&editorials).Error
	return editorials, total, err
}

func (r *editorialRepository) Update(ctx context.Context, editorial *model.Editorial) error {
	return r.db.WithContext(ctx).Save(editorial).Error
}

func (r *editorialRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Editorial{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *editorialRepository) FindIDsByCreator(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Editorial{}).
		Where("created_by = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *editorialRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Editorial{})
	return res.RowsAffected, res.Error
}
