package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	defaultAnalyticsLimit  = 50
	maxAnalyticsLimit      = 500
	defaultTopPerformers   = 10
	maxTopPerformers       = 100
	defaultUserDetailLimit = 10
)

// DateRangeQuery is the optional inclusive range on attempt time. Values are
// RFC3339 timestamps or plain dates; a plain end date covers its whole day.
type DateRangeQuery struct {
	StartDate string
	EndDate   string
}

type AnalyticsService interface {
	QuizAttempts(ctx context.Context, dates DateRangeQuery, page, limit int) (*dto.QuizAnalyticsResponse, error)
	TopPerformers(ctx context.Context, dates DateRangeQuery, limit int) (*dto.TopPerformersResponse, error)
	UserQuizDetail(ctx context.Context, rawUserID string, page, limit int) (*dto.UserQuizDetailResponse, error)
}

type analyticsService struct {
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	contents    ContentResolver
	now         func() time.Time
}

func NewAnalyticsService(attemptRepo repository.AttemptRepository, userRepo repository.UserRepository, contents ContentResolver) AnalyticsService {
	return &analyticsService{attemptRepo: attemptRepo, userRepo: userRepo, contents: contents, now: time.Now}
}

func parseDateBound(raw, field string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperr.Validation("Invalid " + field).WithDetails("expected YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (q DateRangeQuery) filter() (repository.AttemptFilter, error) {
	var (
		f   repository.AttemptFilter
		err error
	)
	if f.From, err = parseDateBound(q.StartDate, "startDate", false); err != nil {
		return f, err
	}
	if f.To, err = parseDateBound(q.EndDate, "endDate", true); err != nil {
		return f, err
	}
	return f, nil
}

func (q DateRangeQuery) describe() dto.DateRangeDTO {
	r := dto.DateRangeDTO{From: q.StartDate, To: q.EndDate}
	if r.From == "" {
		r.From = "Beginning"
	}
	if r.To == "" {
		r.To = "Now"
	}
	return r
}

// usersFor loads the users behind the aggregates; users deleted since their
// attempts are absent from the map and dropped from summaries.
func (s *analyticsService) usersFor(ctx context.Context, aggs []*userAggregate) (map[uuid.UUID]model.User, error) {
	ids := make([]uuid.UUID, 0, len(aggs))
	for _, a := range aggs {
		ids = append(ids, a.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func contentRefs(attempts []model.QuizAttempt) []ContentRef {
	refs := make([]ContentRef, 0, len(attempts))
	for _, a := range attempts {
		refs = append(refs, ContentRef{Type: a.ContentType, ID: a.ContentID})
	}
	return refs
}

func (s *analyticsService) QuizAttempts(ctx context.Context, dates DateRangeQuery, page, limit int) (*dto.QuizAnalyticsResponse, error) {
	filter, err := dates.filter()
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit, defaultAnalyticsLimit, maxAnalyticsLimit)

	attempts, total, err := s.attemptRepo.ListPage(ctx, filter, offsetFor(page, limit), limit)
	if err != nil {
		log.Error().Err(err).Msg("Analytics: failed to list attempts")
		return nil, apperr.Internal("Failed to load quiz analytics", err)
	}
	stats, err := s.attemptRepo.ListStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Analytics: failed to load attempt stats")
		return nil, apperr.Internal("Failed to load quiz analytics", err)
	}
	contents, err := s.contents.ResolveMany(ctx, contentRefs(attempts))
	if err != nil {
		return nil, err
	}

	aggs := aggregateByUser(stats)
	sortForSummary(aggs)
	users, err := s.usersFor(ctx, aggs)
	if err != nil {
		log.Error().Err(err).Msg("Analytics: failed to load users")
		return nil, apperr.Internal("Failed to load quiz analytics", err)
	}
	summary := make([]dto.UserSummaryStatDTO, 0, len(aggs))
	for _, a := range aggs {
		u, ok := users[a.UserID]
		if !ok {
			continue
		}
		summary = append(summary, dto.UserSummaryStatDTO{
			UserID:             a.UserID,
			Username:           u.Username,
			Email:              u.Email,
			TotalAttempts:      a.Attempts,
			TotalScore:         a.TotalScore,
			TotalQuestions:     a.TotalQuestions,
			AverageScore:       a.AverageScore(),
			AccuracyPercentage: a.Accuracy(),
			FirstAttempt:       a.FirstAttempt,
			LastAttempt:        a.LastAttempt,
		})
	}

	rows := make([]dto.AnalyticsAttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		row := dto.AnalyticsAttemptDTO{
			AttemptID:   a.ID,
			Editorial:   dto.AttemptContentDTO{ID: a.ContentID, Type: string(a.ContentType)},
			Score:       a.Score,
			Total:       a.Total,
			Percentage:  percentage(a.Score, a.Total),
			AttemptedAt: a.CreatedAt,
		}
		if a.User != nil {
			id, joined := a.User.ID, a.User.CreatedAt
			row.User = dto.AttemptUserDTO{ID: &id, Username: a.User.Username, Email: a.User.Email, JoinedAt: &joined}
		}
		if item, ok := contents[ContentRef{Type: a.ContentType, ID: a.ContentID}]; ok {
			row.Editorial.Title = item.Title
			row.Editorial.Category = item.Category
		}
		rows = append(rows, row)
	}

	return &dto.QuizAnalyticsResponse{
		Success: true,
		Data: dto.QuizAnalyticsDataDTO{
			Summary: dto.AnalyticsSummaryDTO{
				TotalAttempts:    total,
				UniqueUsersCount: countUniqueUsers(stats),
				DateRange:        dates.describe(),
				Pagination:       pagination(total, page, limit, len(attempts)),
			},
			Attempts:    rows,
			UserSummary: summary,
			DailyStats:  dailyStats(stats),
		},
	}, nil
}

func (s *analyticsService) TopPerformers(ctx context.Context, dates DateRangeQuery, limit int) (*dto.TopPerformersResponse, error) {
	filter, err := dates.filter()
	if err != nil {
		return nil, err
	}
	_, limit = normalizePage(1, limit, defaultTopPerformers, maxTopPerformers)

	stats, err := s.attemptRepo.ListStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Analytics: failed to load attempt stats for leaderboard")
		return nil, apperr.Internal("Failed to load top performers", err)
	}
	aggs := aggregateByUser(stats)
	sortForLeaderboard(aggs)
	users, err := s.usersFor(ctx, aggs)
	if err != nil {
		return nil, apperr.Internal("Failed to load top performers", err)
	}

	performers := make([]dto.TopPerformerDTO, 0, limit)
	for _, a := range aggs {
		if len(performers) == limit {
			break
		}
		u, ok := users[a.UserID]
		if !ok {
			continue
		}
		performers = append(performers, dto.TopPerformerDTO{
			UserID:             a.UserID,
			Username:           u.Username,
			Email:              u.Email,
			TotalAttempts:      a.Attempts,
			TotalScore:         a.TotalScore,
			TotalQuestions:     a.TotalQuestions,
			AverageScore:       a.AverageScore(),
			AccuracyPercentage: a.Accuracy(),
			BestScore:          a.BestScore,
			LastAttempt:        a.LastAttempt,
		})
	}
	return &dto.TopPerformersResponse{
		Success: true,
		Data:    dto.TopPerformersDataDTO{TopPerformers: performers, DateRange: dates.describe()},
	}, nil
}

func (s *analyticsService) UserQuizDetail(ctx context.Context, rawUserID string, page, limit int) (*dto.UserQuizDetailResponse, error) {
	userID, err := ParseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit, defaultUserDetailLimit, maxAnalyticsLimit)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to load user", err)
	}

	filter := repository.AttemptFilter{UserID: &userID}
	stats, err := s.attemptRepo.ListStats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Analytics: failed to load user stats")
		return nil, apperr.Internal("Failed to load user quiz attempts", err)
	}
	attempts, total, err := s.attemptRepo.ListPage(ctx, filter, offsetFor(page, limit), limit)
	if err != nil {
		log.Error().Err(err).Str("userID", userID.String()).Msg("Analytics: failed to list user attempts")
		return nil, apperr.Internal("Failed to load user quiz attempts", err)
	}
	contents, err := s.contents.ResolveMany(ctx, contentRefs(attempts))
	if err != nil {
		return nil, err
	}

	var statistics dto.UserStatisticsDTO
	if aggs := aggregateByUser(stats); len(aggs) == 1 {
		a := aggs[0]
		first, last := a.FirstAttempt, a.LastAttempt
		statistics = dto.UserStatisticsDTO{
			TotalAttempts:      a.Attempts,
			TotalScore:         a.TotalScore,
			TotalQuestions:     a.TotalQuestions,
			AverageScore:       a.AverageScore(),
			BestScore:          a.BestScore,
			WorstScore:         a.WorstScore,
			AccuracyPercentage: a.Accuracy(),
			FirstAttempt:       &first,
			LastAttempt:        &last,
		}
	}

	now := s.now()
	history := make([]dto.UserAttemptHistoryDTO, 0, len(attempts))
	for _, a := range attempts {
		item := dto.UserAttemptHistoryDTO{
			AttemptID:   a.ID,
			ContentType: string(a.ContentType),
			ContentID:   a.ContentID,
			Score:       a.Score,
			Total:       a.Total,
			Percentage:  percentage(a.Score, a.Total),
			AttemptedAt: a.CreatedAt,
			TimeAgo:     FormatRelativeTime(now, a.CreatedAt),
		}
		if c, ok := contents[ContentRef{Type: a.ContentType, ID: a.ContentID}]; ok {
			item.Title = c.Title
			item.Preview = c.Preview
		}
		history = append(history, item)
	}

	return &dto.UserQuizDetailResponse{
		Success: true,
		Data: dto.UserQuizDetailDataDTO{
			User: dto.UserProfileSummaryDTO{
				ID:       user.ID,
				Username: user.Username,
				JoinedAt: user.CreatedAt,
				Streak:   user.Streak,
				Points:   user.Points,
			},
			Statistics: statistics,
			Attempts:   history,
			Pagination: pagination(total, page, limit, len(attempts)),
		},
	}, nil
}
