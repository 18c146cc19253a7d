package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stat(user uuid.UUID, score, total int, at time.Time) repository.AttemptStat {
	return repository.AttemptStat{ID: uuid.New(), UserID: user, Score: score, Total: total, CreatedAt: at}
}

func TestAggregateByUser(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	stats := []repository.AttemptStat{
		stat(alice, 4, 5, base),
		stat(bob, 1, 3, base.Add(time.Hour)),
		stat(alice, 2, 5, base.Add(-time.Hour)),
	}

	aggs := aggregateByUser(stats)
	require.Len(t, aggs, 2)
	assert.Equal(t, alice, aggs[0].UserID)
	assert.Equal(t, 2, aggs[0].Attempts)
	assert.Equal(t, 6, aggs[0].TotalScore)
	assert.Equal(t, 10, aggs[0].TotalQuestions)
	assert.Equal(t, 4, aggs[0].BestScore)
	assert.Equal(t, 2, aggs[0].WorstScore)
	assert.Equal(t, base.Add(-time.Hour), aggs[0].FirstAttempt)
	assert.Equal(t, base, aggs[0].LastAttempt)
	assert.Equal(t, 3.0, aggs[0].AverageScore())
	assert.Equal(t, 60.0, aggs[0].Accuracy())

	assert.Equal(t, 33.33, aggs[1].Accuracy())
	assert.Equal(t, 2, countUniqueUsers(stats))
}

func TestAccuracyWithNoQuestions(t *testing.T) {
	aggs := aggregateByUser([]repository.AttemptStat{stat(uuid.New(), 0, 0, time.Now())})
	require.Len(t, aggs, 1)
	assert.Equal(t, 0.0, aggs[0].Accuracy())
}

func TestSortForSummaryAndLeaderboard(t *testing.T) {
	busy, precise, middling := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC()
	stats := []repository.AttemptStat{
		stat(middling, 3, 5, now),
		stat(busy, 2, 5, now), stat(busy, 3, 5, now), stat(busy, 2, 5, now),
		stat(precise, 5, 5, now),
	}

	summary := aggregateByUser(stats)
	sortForSummary(summary)
	assert.Equal(t, busy, summary[0].UserID)
	assert.Equal(t, middling, summary[2].UserID, "ties on attempts break on average score")

	board := aggregateByUser(stats)
	sortForLeaderboard(board)
	assert.Equal(t, precise, board[0].UserID)
	assert.Equal(t, middling, board[1].UserID)
	assert.Equal(t, busy, board[2].UserID)
}

func TestLeaderboardTieBreaksOnAttempts(t *testing.T) {
	once, twice := uuid.New(), uuid.New()
	now := time.Now().UTC()
	board := aggregateByUser([]repository.AttemptStat{
		stat(once, 4, 5, now),
		stat(twice, 4, 5, now), stat(twice, 4, 5, now),
	})
	sortForLeaderboard(board)
	assert.Equal(t, twice, board[0].UserID)
}

func TestDailyStats(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	d1 := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 15, 0, 0, time.UTC)
	days := dailyStats([]repository.AttemptStat{
		stat(a, 4, 5, d1),
		stat(b, 2, 5, d1),
		stat(a, 3, 5, d2),
	})

	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-02", days[0].Date)
	assert.Equal(t, 1, days[0].AttemptCount)
	assert.Equal(t, "2024-03-01", days[1].Date)
	assert.Equal(t, 2, days[1].AttemptCount)
	assert.Equal(t, 2, days[1].UniqueUsersCount)
	assert.Equal(t, 3.0, days[1].AvgScore)
}
