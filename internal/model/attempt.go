package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptAnswer is one scored answer inside an attempt, in submission order.
type AttemptAnswer struct {
	QuestionID uuid.UUID `json:"mcqId"`
	Selected   string    `json:"selected"`
	Correct    bool      `json:"correct"`
}

// QuizAttempt is a user's single scored pass over a content item's questions.
// The unique index is the authority on one attempt per user and content item.
type QuizAttempt struct {
	ID          uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_content,priority:1" json:"user_id"`
	User        *User                              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ContentType ContentType                        `gorm:"type:varchar(16);not null;uniqueIndex:idx_attempt_user_content,priority:2;index:idx_attempt_content,priority:1" json:"content_type"`
	ContentID   uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_user_content,priority:3;index:idx_attempt_content,priority:2" json:"content_id"`
	Score       int                                `gorm:"not null" json:"score"`
	Total       int                                `gorm:"not null" json:"total"`
	Answers     datatypes.JSONSlice[AttemptAnswer] `json:"answers"`
	CreatedAt   time.Time                          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
