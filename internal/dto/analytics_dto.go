package dto

import (
	"time"

	"github.com/google/uuid"
)

type DateRangeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AttemptUserDTO struct {
	ID       *uuid.UUID `json:"id"`
	Username string     `json:"username,omitempty"`
	Email    string     `json:"email,omitempty"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

type AttemptContentDTO struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Title    string    `json:"title,omitempty"`
	Category string    `json:"category,omitempty"`
}

type AnalyticsAttemptDTO struct {
	AttemptID   uuid.UUID         `json:"attemptId"`
	User        AttemptUserDTO    `json:"user"`
	Editorial   AttemptContentDTO `json:"editorial"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Percentage  int               `json:"percentage"`
	AttemptedAt time.Time         `json:"attemptedAt"`
}

type UserSummaryStatDTO struct {
	UserID             uuid.UUID `json:"_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	TotalAttempts      int       `json:"totalAttempts"`
	TotalScore         int       `json:"totalScore"`
	TotalQuestions     int       `json:"totalQuestions"`
	AverageScore       float64   `json:"averageScore"`
	AccuracyPercentage float64   `json:"accuracyPercentage"`
	FirstAttempt       time.Time `json:"firstAttempt"`
	LastAttempt        time.Time `json:"lastAttempt"`
}

type DailyStatDTO struct {
	Date             string  `json:"date"`
	AttemptCount     int     `json:"attemptCount"`
	UniqueUsersCount int     `json:"uniqueUsersCount"`
	AvgScore         float64 `json:"avgScore"`
}

type AnalyticsSummaryDTO struct {
	TotalAttempts    int64         `json:"totalAttempts"`
	UniqueUsersCount int           `json:"uniqueUsersCount"`
	DateRange        DateRangeDTO  `json:"dateRange"`
	Pagination       PaginationDTO `json:"pagination"`
}

type QuizAnalyticsDataDTO struct {
	Summary     AnalyticsSummaryDTO   `json:"summary"`
	Attempts    []AnalyticsAttemptDTO `json:"attempts"`
	UserSummary []UserSummaryStatDTO  `json:"userSummary"`
	DailyStats  []DailyStatDTO        `json:"dailyStats"`
}

type QuizAnalyticsResponse struct {
	Success bool                 `json:"success"`
	Data    QuizAnalyticsDataDTO `json:"data"`
}

type TopPerformerDTO struct {
	UserID             uuid.UUID `json:"_id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	TotalAttempts      int       `json:"totalAttempts"`
	TotalScore         int       `json:"totalScore"`
	TotalQuestions     int       `json:"totalQuestions"`
	AverageScore       float64   `json:"averageScore"`
	AccuracyPercentage float64   `json:"accuracyPercentage"`
	BestScore          int       `json:"bestScore"`
	LastAttempt        time.Time `json:"lastAttempt"`
}

type TopPerformersDataDTO struct {
	TopPerformers []TopPerformerDTO `json:"topPerformers"`
	DateRange     DateRangeDTO      `json:"dateRange"`
}

type TopPerformersResponse struct {
	Success bool                 `json:"success"`
	Data    TopPerformersDataDTO `json:"data"`
}

type UserProfileSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Streak   int       `json:"streak"`
	Points   int       `json:"points"`
}

type UserStatisticsDTO struct {
	TotalAttempts      int        `json:"totalAttempts"`
	TotalScore         int        `json:"totalScore"`
	TotalQuestions     int        `json:"totalQuestions"`
	AverageScore       float64    `json:"averageScore"`
	BestScore          int        `json:"bestScore"`
	WorstScore         int        `json:"worstScore"`
	AccuracyPercentage float64    `json:"accuracyPercentage"`
	FirstAttempt       *time.Time `json:"firstAttempt"`
	LastAttempt        *time.Time `json:"lastAttempt"`
}

type UserAttemptHistoryDTO struct {
	AttemptID   uuid.UUID `json:"attemptId"`
	ContentType string    `json:"contentType"`
	ContentID   uuid.UUID `json:"contentId"`
	Title       string    `json:"title"`
	Preview     string    `json:"preview"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	AttemptedAt time.Time `json:"attemptedAt"`
	TimeAgo     string    `json:"timeAgo"`
}

type UserQuizDetailDataDTO struct {
	User       UserProfileSummaryDTO   `json:"user"`
	Statistics UserStatisticsDTO       `json:"statistics"`
	Attempts   []UserAttemptHistoryDTO `json:"attempts"`
	Pagination PaginationDTO           `json:"pagination"`
}

type UserQuizDetailResponse struct {
	Success bool                  `json:"success"`
	Data    UserQuizDetailDataDTO `json:"data"`
}
