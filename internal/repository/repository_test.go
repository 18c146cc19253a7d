package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newUser(t *testing.T, repo UserRepository, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserCreateDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	newUser(t, repo, "ravi")

	err := repo.Create(context.Background(), &model.User{Username: "ravi", Email: "other@example.com", PasswordHash: "x"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	found, err := repo.FindByEmailOrUsername(context.Background(), "ravi@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "ravi", found.Username)

	_, err = repo.FindByEmailOrUsername(context.Background(), "", "")
	assert.Error(t, err)
}

func TestBookmarkJoinTable(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	articles := NewArticleRepository(db)
	ctx := context.Background()
	u := newUser(t, users, "bookworm")
	a := &model.Article{Title: "Pinned"}
	require.NoError(t, articles.Create(ctx, a))

	require.NoError(t, users.AddBookmark(ctx, u.ID, a.ID))
	assert.ErrorIs(t, users.AddBookmark(ctx, u.ID, a.ID), ErrDuplicate)

	list, err := users.ListBookmarks(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pinned", list[0].Title)

	n, err := users.DeleteBookmarksByArticles(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	has, err := users.HasBookmark(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestInsertIgnoringDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()
	link := func(s string) *string { return &s }

	require.NoError(t, repo.Create(ctx, &model.Article{Title: "Existing", Link: link("https://a/1")}))

	added, err := repo.InsertIgnoringDuplicates(ctx, []model.Article{
		{Title: "Again", Link: link("https://a/1")},
		{Title: "Fresh", Link: link("https://a/2")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), added)

	existing, err := repo.ExistingLinks(ctx, []string{"https://a/1", "https://a/2", "https://a/3"})
	require.NoError(t, err)
	assert.Len(t, existing, 2)
	assert.Contains(t, existing, "https://a/2")

	added, err = repo.InsertIgnoringDuplicates(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestAttemptUniquePerUserAndContent(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	repo := NewAttemptRepository(db)
	ctx := context.Background()
	u := newUser(t, users, "quizzer")
	contentID := uuid.New()

	attempt := func(ct model.ContentType) *model.QuizAttempt {
		return &model.QuizAttempt{UserID: u.ID, ContentType: ct, ContentID: contentID, Score: 1, Total: 5, Answers: datatypes.JSONSlice[model.AttemptAnswer]{}}
	}
	require.NoError(t, repo.Create(ctx, attempt(model.ContentEditorial)))
	assert.ErrorIs(t, repo.Create(ctx, attempt(model.ContentEditorial)), ErrDuplicate)
	require.NoError(t, repo.Create(ctx, attempt(model.ContentArticle)), "same id under another content type is a different item")

	exists, err := repo.ExistsByUserAndContent(ctx, u.ID, model.ContentEditorial, contentID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAttemptListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	repo := NewAttemptRepository(db)
	ctx := context.Background()
	a, b := newUser(t, users, "ann"), newUser(t, users, "ben")
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, u := range []*model.User{a, a, b} {
		require.NoError(t, repo.Create(ctx, &model.QuizAttempt{
			UserID: u.ID, ContentType: model.ContentEditorial, ContentID: uuid.New(),
			Score: i, Total: 5, Answers: datatypes.JSONSlice[model.AttemptAnswer]{},
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}))
	}

	from := base.Add(12 * time.Hour)
	stats, err := repo.ListStats(ctx, AttemptFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, stats, 2)

	page, total, err := repo.ListPage(ctx, AttemptFilter{UserID: &a.ID}, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	require.NotNil(t, page[0].User)
	assert.Equal(t, "ann", page[0].User.Username)
	assert.Equal(t, 1, page[0].Score, "newest first")
}

func TestQuestionsOrderedByPosition(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()
	contentID := uuid.New()

	qs := []model.Question{
		{ContentType: model.ContentArticle, ContentID: contentID, Question: "second", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Position: 1},
		{ContentType: model.ContentArticle, ContentID: contentID, Question: "first", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Position: 0},
	}
	require.NoError(t, repo.CreateBatch(ctx, qs))

	got, err := repo.FindByContent(ctx, model.ContentArticle, contentID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Question)

	bad := []model.Question{{ContentType: model.ContentArticle, ContentID: contentID, Question: "bad", Options: []string{"a", "b"}, CorrectAnswer: "a"}}
	assert.ErrorIs(t, repo.CreateBatch(ctx, bad), model.ErrInvalidQuestion)
	n, err := repo.CountByContent(ctx, model.ContentArticle, contentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
