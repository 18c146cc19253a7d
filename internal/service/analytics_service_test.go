package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func (r *repos) attemptAt(t *testing.T, userID uuid.UUID, contentType model.ContentType, contentID uuid.UUID, score, total int, at time.Time) {
	t.Helper()
	a := &model.QuizAttempt{
		UserID:      userID,
		ContentType: contentType,
		ContentID:   contentID,
		Score:       score,
		Total:       total,
		Answers:     datatypes.JSONSlice[model.AttemptAnswer]{},
		CreatedAt:   at,
	}
	require.NoError(t, r.attempts.Create(context.Background(), a))
}

func TestQuizAttemptsSummaries(t *testing.T) {
	r := newRepos(t)
	alice, bob := r.user(t, "alice"), r.user(t, "bob")
	day := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	var editorials []*model.Editorial
	for i := 0; i < 3; i++ {
		editorials = append(editorials, r.editorial(t, "Ed", nil))
	}
	r.attemptAt(t, alice.ID, model.ContentEditorial, editorials[0].ID, 4, 5, day)
	r.attemptAt(t, alice.ID, model.ContentEditorial, editorials[1].ID, 2, 5, day.Add(24*time.Hour))
	r.attemptAt(t, bob.ID, model.ContentEditorial, editorials[0].ID, 1, 3, day.Add(time.Hour))
	r.attemptAt(t, bob.ID, model.ContentEditorial, editorials[2].ID, 0, 0, day.Add(48*time.Hour))

	svc := NewAnalyticsService(r.attempts, r.users, r.contents)
	resp, err := svc.QuizAttempts(context.Background(), DateRangeQuery{}, 1, 50)
	require.NoError(t, err)

	sum := resp.Data.Summary
	assert.Equal(t, int64(4), sum.TotalAttempts)
	assert.Equal(t, 2, sum.UniqueUsersCount)
	assert.Equal(t, "Beginning", sum.DateRange.From)
	assert.Equal(t, "Now", sum.DateRange.To)

	require.Len(t, resp.Data.Attempts, 4)
	newest := resp.Data.Attempts[0]
	assert.Equal(t, 0, newest.Percentage)
	assert.Equal(t, "bob", newest.User.Username)
	assert.Equal(t, "Ed", newest.Editorial.Title)

	require.Len(t, resp.Data.UserSummary, 2)
	for _, s := range resp.Data.UserSummary {
		if s.UserID == bob.ID {
			assert.Equal(t, 33.33, s.AccuracyPercentage)
			assert.Equal(t, 0.5, s.AverageScore)
		} else {
			assert.Equal(t, 60.0, s.AccuracyPercentage)
			assert.Equal(t, 3.0, s.AverageScore)
		}
	}
	assert.Equal(t, alice.ID, resp.Data.UserSummary[0].UserID, "equal attempts break on average score")

	require.Len(t, resp.Data.DailyStats, 3)
	assert.Equal(t, "2024-02-12", resp.Data.DailyStats[0].Date)
	assert.Equal(t, 2, resp.Data.DailyStats[2].AttemptCount)
}

func TestQuizAttemptsPagination(t *testing.T) {
	r := newRepos(t)
	u := r.user(t, "pager")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		ed := r.editorial(t, "Page", nil)
		r.attemptAt(t, u.ID, model.ContentEditorial, ed.ID, 1, 5, base.Add(time.Duration(i)*time.Minute))
	}

	svc := NewAnalyticsService(r.attempts, r.users, r.contents)
	resp, err := svc.QuizAttempts(context.Background(), DateRangeQuery{}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Data.Attempts, 3)
	p := resp.Data.Summary.Pagination
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestQuizAttemptsDateRange(t *testing.T) {
	r := newRepos(t)
	u := r.user(t, "ranger")
	ed1, ed2, ed3 := r.editorial(t, "a", nil), r.editorial(t, "b", nil), r.editorial(t, "c", nil)
	r.attemptAt(t, u.ID, model.ContentEditorial, ed1.ID, 1, 5, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	r.attemptAt(t, u.ID, model.ContentEditorial, ed2.ID, 1, 5, time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC))
	r.attemptAt(t, u.ID, model.ContentEditorial, ed3.ID, 1, 5, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))

	svc := NewAnalyticsService(r.attempts, r.users, r.contents)
	resp, err := svc.QuizAttempts(context.Background(), DateRangeQuery{StartDate: "2024-03-02", EndDate: "2024-03-05"}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Data.Summary.TotalAttempts, "a plain end date covers its whole day")
	assert.Equal(t, "2024-03-02", resp.Data.Summary.DateRange.From)

	_, err = svc.QuizAttempts(context.Background(), DateRangeQuery{StartDate: "yesterday"}, 1, 50)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestTopPerformers(t *testing.T) {
	r := newRepos(t)
	ace, steady, novice := r.user(t, "ace"), r.user(t, "steady"), r.user(t, "novice")
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		ed := r.editorial(t, "t", nil)
		r.attemptAt(t, steady.ID, model.ContentEditorial, ed.ID, 4, 5, now)
		if i == 0 {
			r.attemptAt(t, ace.ID, model.ContentEditorial, ed.ID, 5, 5, now)
			r.attemptAt(t, novice.ID, model.ContentEditorial, ed.ID, 1, 5, now)
		}
	}

	svc := NewAnalyticsService(r.attempts, r.users, r.contents)
	resp, err := svc.TopPerformers(context.Background(), DateRangeQuery{}, 2)
	require.NoError(t, err)
	require.Len(t, resp.Data.TopPerformers, 2)
	assert.Equal(t, "ace", resp.Data.TopPerformers[0].Username)
	assert.Equal(t, 100.0, resp.Data.TopPerformers[0].AccuracyPercentage)
	assert.Equal(t, "steady", resp.Data.TopPerformers[1].Username)
	assert.Equal(t, 3, resp.Data.TopPerformers[1].TotalAttempts)
}

func TestUserQuizDetail(t *testing.T) {
	r := newRepos(t)
	u := r.user(t, "detail")
	ed := r.editorial(t, "Detailed editorial", nil)
	art := r.article(t, "Detailed article", nil)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	r.attemptAt(t, u.ID, model.ContentEditorial, ed.ID, 3, 5, now.Add(-90*time.Minute))
	r.attemptAt(t, u.ID, model.ContentArticle, art.ID, 5, 5, now.Add(-25*time.Hour))

	svc := NewAnalyticsService(r.attempts, r.users, r.contents).(*analyticsService)
	svc.now = func() time.Time { return now }

	resp, err := svc.UserQuizDetail(context.Background(), u.ID.String(), 1, 10)
	require.NoError(t, err)
	data := resp.Data
	assert.Equal(t, "detail", data.User.Username)
	assert.Equal(t, 2, data.Statistics.TotalAttempts)
	assert.Equal(t, 5, data.Statistics.BestScore)
	assert.Equal(t, 3, data.Statistics.WorstScore)
	assert.Equal(t, 80.0, data.Statistics.AccuracyPercentage)

	require.Len(t, data.Attempts, 2)
	assert.Equal(t, "1 hour ago", data.Attempts[0].TimeAgo)
	assert.Equal(t, "Detailed editorial", data.Attempts[0].Title)
	assert.Equal(t, "Short take on Detailed editorial", data.Attempts[0].Preview)
	assert.Equal(t, "1 day ago", data.Attempts[1].TimeAgo)
	assert.Equal(t, 100, data.Attempts[1].Percentage)

	_, err = svc.UserQuizDetail(context.Background(), "nope", 1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "Invalid user ID format", apperr.From(err).Message)

	_, err = svc.UserQuizDetail(context.Background(), uuid.NewString(), 1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUserQuizDetailWithoutAttempts(t *testing.T) {
	r := newRepos(t)
	u := r.user(t, "fresh")
	svc := NewAnalyticsService(r.attempts, r.users, r.contents)

	resp, err := svc.UserQuizDetail(context.Background(), u.ID.String(), 1, 10)
	require.NoError(t, err)
	assert.Zero(t, resp.Data.Statistics.TotalAttempts)
	assert.Zero(t, resp.Data.Statistics.AccuracyPercentage)
	assert.Empty(t, resp.Data.Attempts)
}
