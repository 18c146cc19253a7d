package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestProfile(t *testing.T) {
	r := newRepos(t)
	u := r.user(t, "profiled")
	svc := NewUserService(r.db, r.users)

	resp, err := svc.Profile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to your profile", resp.Message)
	assert.Equal(t, "profiled", resp.User.Username)
	assert.Equal(t, []string{model.RoleUser}, resp.User.Roles)

	_, err = svc.Profile(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResetAccountCascades(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	target := r.user(t, "leaving")
	other := r.user(t, "staying")

	ownArticle := r.article(t, "Authored article", &target.ID)
	ownEditorial := r.editorial(t, "Authored editorial", &target.ID)
	sharedEditorial := r.editorial(t, "Someone else's", nil)

	r.bank(t, model.ContentArticle, ownArticle.ID, 5)
	r.bank(t, model.ContentEditorial, ownEditorial.ID, 5)
	sharedQs := r.bank(t, model.ContentEditorial, sharedEditorial.ID, 5)

	attempts := NewAttemptService(r.attempts, r.questions, r.users, r.contents)
	_, err := attempts.Submit(ctx, target.ID, model.ContentEditorial, sharedEditorial.ID, answersFor(sharedQs, 1))
	require.NoError(t, err)
	_, err = attempts.Submit(ctx, other.ID, model.ContentEditorial, sharedEditorial.ID, answersFor(sharedQs, 4))
	require.NoError(t, err)
	require.NoError(t, r.attempts.Create(ctx, &model.QuizAttempt{
		UserID: other.ID, ContentType: model.ContentEditorial, ContentID: ownEditorial.ID,
		Score: 2, Total: 5, Answers: datatypes.JSONSlice[model.AttemptAnswer]{},
	}))

	require.NoError(t, r.users.AddBookmark(ctx, target.ID, ownArticle.ID))
	require.NoError(t, r.users.AddBookmark(ctx, other.ID, ownArticle.ID))
	require.NoError(t, r.evaluations.Create(ctx, &model.Evaluation{UserID: target.ID, Question: "q", AnswerText: "a", Marks: 5}))

	svc := NewUserService(r.db, r.users)
	resp, err := svc.ResetAccount(ctx, target.ID.String())
	require.NoError(t, err)
	c := resp.DeletedCounts
	assert.Equal(t, int64(2), c.MCQAttempts, "own attempt plus the attempt on own editorial")
	assert.Equal(t, int64(1), c.Articles)
	assert.Equal(t, int64(1), c.Editorials)
	assert.Equal(t, int64(10), c.MCQs)
	assert.Equal(t, int64(1), c.Evaluations)
	assert.Equal(t, int64(2), c.Bookmarks)

	_, err = r.users.FindByID(ctx, target.ID)
	assert.True(t, apperr.IsNotFound(err))

	kept, err := r.attempts.ExistsByUserAndContent(ctx, other.ID, model.ContentEditorial, sharedEditorial.ID)
	require.NoError(t, err)
	assert.True(t, kept)
	n, err := r.questions.CountByContent(ctx, model.ContentEditorial, sharedEditorial.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	_, err = svc.ResetAccount(ctx, target.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = svc.ResetAccount(ctx, "garbage")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
