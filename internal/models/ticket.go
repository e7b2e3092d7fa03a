package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAuthorLabel is shown when a ticket has no author name.
const DefaultAuthorLabel = "Unknown author"

// Ticket is a request for a review of a book or article.
type Ticket struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Author      string    `gorm:"size:128" json:"author"`
	Description string    `gorm:"size:2048" json:"description"`
	ImagePath   string    `gorm:"size:255" json:"image_path,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayTitle is the title used on feed cards.
func (t Ticket) DisplayTitle() string {
	return t.Title
}

// DisplayAuthor falls back to a default label when no author was given.
func (t Ticket) DisplayAuthor() string {
	if a := strings.TrimSpace(t.Author); a != "" {
		return a
	}
	return DefaultAuthorLabel
}
