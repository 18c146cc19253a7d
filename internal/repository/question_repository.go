package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) ([]model.Question, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error)
	CountByContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (int64, error)
	// CreateBatch writes every question or none of them.
	CreateBatch(ctx context.Context, questions []model.Question) error
	DeleteByContent(ctx context.Context, contentType model.ContentType, contentIDs []uuid.UUID) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.WithContext(ctx).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Order("position ASC, created_at ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) CountByContent(ctx context.Context, contentType model.ContentType, contentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("content_type = ? AND content_id = ?", contentType, contentID).
		Count(&count).Error
	return count, err
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *questionRepository) DeleteByContent(ctx context.Context, contentType model.ContentType, contentIDs []uuid.UUID) (int64, error) {
	if len(contentIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("content_type = ? AND content_id IN ?", contentType, contentIDs).
		Delete(&model.Question{})
	return res.RowsAffected, res.Error
}
