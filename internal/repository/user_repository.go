package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	UpdateActivity(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	HasBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error)
	DeleteBookmarksByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteBookmarksByArticles(ctx context.Context, articleIDs []uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

const bookmarkTable = "user_bookmarks"

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if apperr.IsDuplicateKey(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrUsername matches either column; empty arguments never match.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("(email = ? AND email <> '') OR (username = ? AND username <> '')", email, username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateActivity(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"points":         user.Points,
			"streak":         user.Streak,
			"last_active_at": user.LastActiveAt,
		}).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *userRepository) AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Exec("INSERT INTO "+bookmarkTable+" (user_id, article_id) VALUES (?, ?)", userID, articleID).Error
	if apperr.IsDuplicateKey(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func (r *userRepository) RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM "+bookmarkTable+" WHERE user_id = ? AND article_id = ?", userID, articleID).Error
}

func (r *userRepository) HasBookmark(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(bookmarkTable).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.Article, error) {
	var articles []model.Article
	user := model.User{ID: userID}
	err := r.db.WithContext(ctx).Model(&user).Association("Bookmarks").Find(&articles)
	return articles, err
}

func (r *userRepository) DeleteBookmarksByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec("DELETE FROM "+bookmarkTable+" WHERE user_id = ?", userID)
	return res.RowsAffected, res.Error
}

func (r *userRepository) DeleteBookmarksByArticles(ctx context.Context, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Exec("DELETE FROM "+bookmarkTable+" WHERE article_id IN ?", articleIDs)
	return res.RowsAffected, res.Error
}
