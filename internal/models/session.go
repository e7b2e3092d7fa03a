package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind a session cookie. Persistent
// sessions ("remember me") live two weeks; the rest expire with the browser
// and a short server-side bound. Logout flips Revoked.
type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash  string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Persistent bool      `gorm:"default:false" json:"persistent"`
	Revoked    bool      `gorm:"default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
