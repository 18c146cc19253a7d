package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultArticleSource = "The Hindu"

type Article struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Source       string                      `gorm:"not null;default:'The Hindu'" json:"source"`
	Link         *string                     `gorm:"uniqueIndex" json:"link,omitempty"` // ingestion dedupe key
	Description  string                      `gorm:"type:text" json:"description"`
	Category     string                      `json:"category"`
	Image        *string                     `json:"image,omitempty"`
	PubDate      *time.Time                  `json:"pub_date,omitempty"`
	BulletPoints datatypes.JSONSlice[string] `json:"bullet_points"`
	AIAnswer     string                      `gorm:"type:text" json:"ai_answer"`
	CreatedBy    *uuid.UUID                  `gorm:"type:uuid;index" json:"created_by,omitempty"`
	CreatedAt    time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Source == "" {
		a.Source = DefaultArticleSource
	}
	return nil
}

// Body is the text handed to the question generator.
func (a *Article) Body() string {
	switch {
	case a.AIAnswer != "":
		return a.AIAnswer
	case a.Description != "":
		return a.Description
	default:
		return a.Title
	}
}
