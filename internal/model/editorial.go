package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultEditorialImage = "https://placehold.co/600x400?text=Editorial+Article"

type Editorial struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Image            string     `gorm:"not null" json:"image"`
	ShortDescription string     `gorm:"type:text;not null" json:"short_description"`
	FullContent      string     `gorm:"type:text;not null" json:"full_content"`
	Author           string     `gorm:"not null" json:"author"`
	PaperName        string     `gorm:"not null" json:"paper_name"`
	Tag              string     `gorm:"not null;default:editorial" json:"tag"`
	EditorialDate    time.Time  `gorm:"not null" json:"editorial_date"`
	InsertedAt       time.Time  `gorm:"autoCreateTime;index" json:"inserted_at"`
	CreatedBy        *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (e *Editorial) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Image == "" {
		e.Image = DefaultEditorialImage
	}
	if e.Tag == "" {
		e.Tag = "editorial"
	}
	return nil
}
