package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMCQService(r *repos, gen QuestionGenerator, timeout time.Duration) MCQService {
	cfg := &config.Config{Gemini: config.Gemini{Timeout: timeout}}
	return NewMCQService(r.questions, r.contents, gen, NewKeyedMutex(), cfg)
}

func TestGetOrGenerateCachesFirstResult(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Monsoon policy", nil)
	gen := &fakeGenerator{respond: returning(validQuestionSet(5), 0)}
	svc := newMCQService(r, gen, time.Second)
	ctx := context.Background()

	first, err := svc.GetOrGenerate(ctx, model.ContentEditorial, ed.ID)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, first.MCQs, 5)

	second, err := svc.GetOrGenerate(ctx, model.ContentEditorial, ed.ID)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Len(t, second.MCQs, 5)
	assert.Equal(t, int32(1), gen.calls.Load())

	ids := func(qs []dto.QuestionDTO) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(qs))
		for _, q := range qs {
			out = append(out, q.ID)
		}
		return out
	}
	assert.ElementsMatch(t, ids(first.MCQs), ids(second.MCQs))
}

func TestGetOrGenerateConcurrentRequestsGenerateOnce(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Trade deficit", nil)
	gen := &fakeGenerator{respond: returning(validQuestionSet(5), 30*time.Millisecond)}
	svc := newMCQService(r, gen, time.Second)

	var wg sync.WaitGroup
	errs := make(chan error, 6)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetOrGenerate(context.Background(), model.ContentEditorial, ed.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), gen.calls.Load())
	count, err := r.questions.CountByContent(context.Background(), model.ContentEditorial, ed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestGetOrGenerateRejectsMalformedOutput(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Fiscal federalism", nil)
	bad := validQuestionSet(5)
	bad[3].CorrectAnswer = "Z"
	gen := &fakeGenerator{respond: returning(bad, 0)}
	svc := newMCQService(r, gen, time.Second)

	_, err := svc.GetOrGenerate(context.Background(), model.ContentEditorial, ed.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	assert.Equal(t, 500, apperr.From(err).StatusCode())

	count, err := r.questions.CountByContent(context.Background(), model.ContentEditorial, ed.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetOrGenerateRejectsWrongCount(t *testing.T) {
	r := newRepos(t)
	a := r.article(t, "Satellite launch", nil)
	gen := &fakeGenerator{respond: returning(validQuestionSet(3), 0)}
	svc := newMCQService(r, gen, time.Second)

	_, err := svc.GetOrGenerate(context.Background(), model.ContentArticle, a.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	count, _ := r.questions.CountByContent(context.Background(), model.ContentArticle, a.ID)
	assert.Zero(t, count)
}

func TestGetOrGenerateTimesOut(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Slow upstream", nil)
	gen := &fakeGenerator{respond: returning(validQuestionSet(5), time.Second)}
	svc := newMCQService(r, gen, 20*time.Millisecond)

	_, err := svc.GetOrGenerate(context.Background(), model.ContentEditorial, ed.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
	assert.Contains(t, apperr.From(err).Message, "timed out")

	count, _ := r.questions.CountByContent(context.Background(), model.ContentEditorial, ed.ID)
	assert.Zero(t, count)
}

func TestGetOrGenerateUpstreamError(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Broken upstream", nil)
	gen := &fakeGenerator{respond: func(context.Context) ([]GeneratedQuestion, error) {
		return nil, errors.New("quota exceeded")
	}}
	svc := newMCQService(r, gen, time.Second)

	_, err := svc.GetOrGenerate(context.Background(), model.ContentEditorial, ed.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
}

func TestGetOrGenerateUnknownContent(t *testing.T) {
	r := newRepos(t)
	gen := &fakeGenerator{respond: returning(validQuestionSet(5), 0)}
	svc := newMCQService(r, gen, time.Second)

	_, err := svc.GetOrGenerate(context.Background(), model.ContentEditorial, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "Editorial not found", apperr.From(err).Message)
	assert.Zero(t, gen.calls.Load())
}

func TestListRandomReturnsAtMostFive(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Big bank", nil)
	r.bank(t, model.ContentEditorial, ed.ID, 8)
	svc := newMCQService(r, &fakeGenerator{}, time.Second)

	resp, err := svc.ListRandom(context.Background(), model.ContentEditorial, ed.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Len(t, resp.MCQs, 5)

	empty, err := svc.ListRandom(context.Background(), model.ContentEditorial, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}

func TestCreateQuestionsValidatesEachQuestion(t *testing.T) {
	r := newRepos(t)
	ed := r.editorial(t, "Authored", nil)
	svc := newMCQService(r, &fakeGenerator{}, time.Second)
	ctx := context.Background()

	_, err := svc.CreateQuestions(ctx, model.ContentEditorial, ed.ID, dto.CreateQuestionsRequest{
		Questions: []dto.QuestionInput{{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "e"}},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	resp, err := svc.CreateQuestions(ctx, model.ContentEditorial, ed.ID, dto.CreateQuestionsRequest{
		Questions: []dto.QuestionInput{{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	r := newRepos(t)
	gen := &fakeGenerator{respond: returning(validQuestionSet(5), 0)}
	svc := newMCQService(r, gen, time.Second)

	resp, err := svc.Preview(context.Background(), dto.GenerateQuestionsRequest{Title: "Draft", Content: "Body"})
	require.NoError(t, err)
	assert.Len(t, resp.MCQs, 5)

	var n int64
	require.NoError(t, r.db.Model(&model.Question{}).Count(&n).Error)
	assert.Zero(t, n)
}
