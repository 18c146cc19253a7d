package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/repository"
)

// userAggregate accumulates one user's attempts inside a date range.
type userAggregate struct {
	UserID         uuid.UUID
	Attempts       int
	TotalScore     int
	TotalQuestions int
	BestScore      int
	WorstScore     int
	FirstAttempt   time.Time
	LastAttempt    time.Time
}

func (a *userAggregate) add(s repository.AttemptStat) {
	if a.Attempts == 0 {
		a.BestScore, a.WorstScore = s.Score, s.Score
		a.FirstAttempt, a.LastAttempt = s.CreatedAt, s.CreatedAt
	}
	a.Attempts++
	a.TotalScore += s.Score
	a.TotalQuestions += s.Total
	if s.Score > a.BestScore {
		a.BestScore = s.Score
	}
	if s.Score < a.WorstScore {
		a.WorstScore = s.Score
	}
	if s.CreatedAt.Before(a.FirstAttempt) {
		a.FirstAttempt = s.CreatedAt
	}
	if s.CreatedAt.After(a.LastAttempt) {
		a.LastAttempt = s.CreatedAt
	}
}

func (a *userAggregate) AverageScore() float64 {
	return averageOf(a.TotalScore, a.Attempts)
}

func (a *userAggregate) Accuracy() float64 {
	return accuracyPercentage(a.TotalScore, a.TotalQuestions)
}

// aggregateByUser groups stats by user, preserving first-seen order.
func aggregateByUser(stats []repository.AttemptStat) []*userAggregate {
	byUser := make(map[uuid.UUID]*userAggregate)
	var ordered []*userAggregate
	for _, s := range stats {
		agg, ok := byUser[s.UserID]
		if !ok {
			agg = &userAggregate{UserID: s.UserID}
			byUser[s.UserID] = agg
			ordered = append(ordered, agg)
		}
		agg.add(s)
	}
	return ordered
}

func countUniqueUsers(stats []repository.AttemptStat) int {
	seen := make(map[uuid.UUID]struct{}, len(stats))
	for _, s := range stats {
		seen[s.UserID] = struct{}{}
	}
	return len(seen)
}

// sortForSummary orders by attempts desc, then average score desc.
func sortForSummary(aggs []*userAggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		if aggs[i].Attempts != aggs[j].Attempts {
			return aggs[i].Attempts > aggs[j].Attempts
		}
		return aggs[i].AverageScore() > aggs[j].AverageScore()
	})
}

// sortForLeaderboard orders by accuracy desc, then attempts desc.
func sortForLeaderboard(aggs []*userAggregate) {
	sort.SliceStable(aggs, func(i, j int) bool {
		ai, aj := aggs[i].Accuracy(), aggs[j].Accuracy()
		if ai != aj {
			return ai > aj
		}
		return aggs[i].Attempts > aggs[j].Attempts
	})
}

// dailyStats buckets attempts by UTC calendar day, newest day first.
func dailyStats(stats []repository.AttemptStat) []dto.DailyStatDTO {
	type bucket struct {
		attempts int
		score    int
		users    map[uuid.UUID]struct{}
	}
	buckets := make(map[string]*bucket)
	for _, s := range stats {
		day := s.CreatedAt.UTC().Format(time.DateOnly)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{users: make(map[uuid.UUID]struct{})}
			buckets[day] = b
		}
		b.attempts++
		b.score += s.Score
		b.users[s.UserID] = struct{}{}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]dto.DailyStatDTO, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		out = append(out, dto.DailyStatDTO{
			Date:             day,
			AttemptCount:     b.attempts,
			UniqueUsersCount: len(b.users),
			AvgScore:         averageOf(b.score, b.attempts),
		})
	}
	return out
}
