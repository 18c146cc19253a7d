package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserSummaryDTO is the sanitized user returned with a token.
type UserSummaryDTO struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	SubscriptionStatus string    `json:"subscriptionStatus"`
	ReferralCode       string    `json:"referralCode"`
	Streak             int       `json:"streak"`
	Points             int       `json:"points"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  UserSummaryDTO `json:"user"`
}

type ProfileDTO struct {
	ID                 uuid.UUID  `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	SubscriptionStatus string     `json:"subscriptionStatus"`
	TrialStartDate     *time.Time `json:"trialStartDate,omitempty"`
	ReferralCode       string     `json:"referralCode"`
	ReferredBy         string     `json:"referredBy,omitempty"`
	Streak             int        `json:"streak"`
	Points             int        `json:"points"`
	LastActiveAt       *time.Time `json:"lastActiveAt,omitempty"`
	Roles              []string   `json:"roles"`
}

type ProfileResponse struct {
	Message string     `json:"message"`
	User    ProfileDTO `json:"user"`
}

type DeletedCountsDTO struct {
	MCQAttempts int64 `json:"mcqAttempts"`
	Articles    int64 `json:"articles"`
	Editorials  int64 `json:"editorials"`
	MCQs        int64 `json:"mcqs"`
	Evaluations int64 `json:"evaluations"`
	Bookmarks   int64 `json:"bookmarks"`
}

type ResetUserResponse struct {
	Message       string           `json:"message"`
	DeletedCounts DeletedCountsDTO `json:"deletedCounts"`
}
