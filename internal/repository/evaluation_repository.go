package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
)

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Evaluation, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Evaluation{})
	return res.RowsAffected, res.Error
}
