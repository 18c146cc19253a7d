package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Evaluation struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Question    string                      `gorm:"type:text;not null" json:"question"`
	AnswerText  string                      `gorm:"type:text;not null" json:"answer_text"`
	Marks       float64                     `gorm:"not null" json:"marks"`
	Feedback    string                      `gorm:"type:text" json:"feedback"`
	Suggestions datatypes.JSONSlice[string] `json:"suggestions"`
	CreatedAt   time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
