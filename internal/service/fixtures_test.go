package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/lshigami/Editorly/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repos struct {
	db          *gorm.DB
	users       repository.UserRepository
	articles    repository.ArticleRepository
	editorials  repository.EditorialRepository
	questions   repository.QuestionRepository
	attempts    repository.AttemptRepository
	evaluations repository.EvaluationRepository
	contents    ContentResolver
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	db := testutil.NewDB(t)
	r := &repos{
		db:          db,
		users:       repository.NewUserRepository(db),
		articles:    repository.NewArticleRepository(db),
		editorials:  repository.NewEditorialRepository(db),
		questions:   repository.NewQuestionRepository(db),
		attempts:    repository.NewAttemptRepository(db),
		evaluations: repository.NewEvaluationRepository(db),
	}
	r.contents = NewContentResolver(r.articles, r.editorials)
	return r
}

func (r *repos) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func (r *repos) editorial(t *testing.T, title string, author *uuid.UUID) *model.Editorial {
	t.Helper()
	e := &model.Editorial{
		Title:            title,
		ShortDescription: "Short take on " + title,
		FullContent:      "Full text of " + title,
		Author:           "Desk",
		PaperName:        "The Hindu",
		EditorialDate:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:        author,
	}
	require.NoError(t, r.editorials.Create(context.Background(), e))
	return e
}

func (r *repos) article(t *testing.T, title string, author *uuid.UUID) *model.Article {
	t.Helper()
	a := &model.Article{Title: title, Description: "About " + title, Category: "World", CreatedBy: author}
	require.NoError(t, r.articles.Create(context.Background(), a))
	return a
}

// bank stores n questions whose correct answer is always "B".
func (r *repos) bank(t *testing.T, contentType model.ContentType, contentID uuid.UUID, n int) []model.Question {
	t.Helper()
	qs := make([]model.Question, 0, n)
	for i, g := range validQuestionSet(n) {
		qs = append(qs, model.Question{
			ContentType:   contentType,
			ContentID:     contentID,
			Question:      g.Question,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Position:      i,
		})
	}
	require.NoError(t, r.questions.CreateBatch(context.Background(), qs))
	return qs
}

// fakeGenerator counts calls and returns whatever respond produces.
type fakeGenerator struct {
	calls   atomic.Int32
	mu      sync.Mutex
	respond func(ctx context.Context) ([]GeneratedQuestion, error)
}

func (f *fakeGenerator) GenerateQuestions(ctx context.Context, title, content string) ([]GeneratedQuestion, error) {
	f.calls.Add(1)
	f.mu.Lock()
	respond := f.respond
	f.mu.Unlock()
	return respond(ctx)
}

func returning(qs []GeneratedQuestion, delay time.Duration) func(context.Context) ([]GeneratedQuestion, error) {
	return func(ctx context.Context) ([]GeneratedQuestion, error) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return qs, nil
	}
}

type fakeEvaluator struct {
	result *AnswerEvaluation
	err    error
}

func (f *fakeEvaluator) EvaluateAnswer(ctx context.Context, question, answer string) (*AnswerEvaluation, error) {
	return f.result, f.err
}

func newTestConfig() *config.Config {
	return &config.Config{Gemini: config.Gemini{Timeout: time.Second}}
}
