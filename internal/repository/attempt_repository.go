package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
)

// AttemptFilter narrows attempt queries. Nil bounds are open.
type AttemptFilter struct {
	From   *time.Time
	To     *time.Time
	UserID *uuid.UUID
}

// AttemptStat is the slim projection the analytics aggregations run over.
type AttemptStat struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ContentType model.ContentType
	ContentID   uuid.UUID
	Score       int
	Total       int
	CreatedAt   time.Time
}

type AttemptRepository interface {
	// Create returns ErrDuplicate when the user already has an attempt for
	// the content item.
	Create(ctx context.Context, attempt *model.QuizAttempt) error
	FindByUserAndContent(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*model.QuizAttempt, error)
	ExistsByUserAndContent(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)

	ListPage(ctx context.Context, filter AttemptFilter, offset, limit int) ([]model.QuizAttempt, int64, error)
	ListStats(ctx context.Context, filter AttemptFilter) ([]AttemptStat, error)

	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByContent(ctx context.Context, contentType model.ContentType, contentIDs []uuid.UUID) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func applyAttemptFilter(db *gorm.DB, filter AttemptFilter) *gorm.DB {
	if filter.From != nil {
		db = db.Where("quiz_attempts.created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		db = db.Where("quiz_attempts.created_at <= ?", filter.To.UTC())
	}
	if filter.UserID != nil {
		db = db.Where("quiz_attempts.user_id = ?", *filter.UserID)
	}
	return db
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	err := r.db.WithContext(ctx).Create(attempt).Error
	if apperr.IsDuplicateKey(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (r *attemptRepository) FindByUserAndContent(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) ExistsByUserAndContent(ctx context.Context, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.QuizAttempt{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// ListPage returns attempts newest first with their user loaded.
func (r *attemptRepository) ListPage(ctx context.Context, filter AttemptFilter, offset, limit int) ([]model.QuizAttempt, int64, error) {
	var (
		attempts []model.QuizAttempt
		total    int64
	)
	countQuery := applyAttemptFilter(r.db.WithContext(ctx).Model(&model.QuizAttempt{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := applyAttemptFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Order("quiz_attempts.created_at DESC, quiz_attempts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *attemptRepository) ListStats(ctx context.Context, filter AttemptFilter) ([]AttemptStat, error) {
	var stats []AttemptStat
	err := applyAttemptFilter(r.db.WithContext(ctx).Model(&model.QuizAttempt{}), filter).
		Select("id, user_id, content_type, content_id, score, total, created_at").
		Order("created_at ASC").
		Scan(&stats).Error
	return stats, err
}

func (r *attemptRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.QuizAttempt{})
	return res.RowsAffected, res.Error
}

func (r *attemptRepository) DeleteByContent(ctx context.Context, contentType model.ContentType, contentIDs []uuid.UUID) (int64, error) {
	if len(contentIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("content_type = ? AND content_id IN ?", contentType, contentIDs).
		Delete(&model.QuizAttempt{})
	return res.RowsAffected, res.Error
}
