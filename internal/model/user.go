package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SubscriptionNone    = "none"
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Username           string                      `gorm:"not null;uniqueIndex" json:"username"`
	Email              string                      `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash       string                      `gorm:"not null" json:"-"`
	SubscriptionStatus string                      `gorm:"not null;default:none" json:"subscription_status"`
	TrialStartDate     *time.Time                  `json:"trial_start_date,omitempty"`
	ReferralCode       *string                     `gorm:"uniqueIndex" json:"referral_code,omitempty"`
	ReferredBy         *string                     `json:"referred_by,omitempty"`
	Streak             int                         `gorm:"not null;default:0" json:"streak"`
	Points             int                         `gorm:"not null;default:0" json:"points"`
	LastActiveAt       *time.Time                  `json:"last_active_at,omitempty"`
	Roles              datatypes.JSONSlice[string] `json:"roles"`
	Bookmarks          []Article                   `gorm:"many2many:user_bookmarks" json:"-"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = SubscriptionNone
	}
	if len(u.Roles) == 0 {
		u.Roles = datatypes.JSONSlice[string]{RoleUser}
	}
	return nil
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
