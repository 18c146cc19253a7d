package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const OptionsPerQuestion = 4

var ErrInvalidQuestion = errors.New("question must have text, exactly 4 options and a correct answer among them")

// Question is one multiple-choice item tied to a single content item.
type Question struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ContentType   ContentType                 `gorm:"type:varchar(16);not null;index:idx_question_content,priority:1" json:"content_type"`
	ContentID     uuid.UUID                   `gorm:"type:uuid;not null;index:idx_question_content,priority:2" json:"content_id"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer string                      `gorm:"not null" json:"correct_answer"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (q *Question) Validate() error {
	if q.Question == "" || len(q.Options) != OptionsPerQuestion || q.CorrectAnswer == "" {
		return ErrInvalidQuestion
	}
	matched := false
	for _, opt := range q.Options {
		if opt == "" {
			return ErrInvalidQuestion
		}
		if opt == q.CorrectAnswer {
			matched = true
		}
	}
	if !matched {
		return ErrInvalidQuestion
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return q.Validate()
}
