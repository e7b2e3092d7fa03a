package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a rated critique answering a ticket.
//
// Two unique indexes guard creation: (user_id, ticket_id) so a user reviews a
// given ticket at most once, and ticket_id alone so a ticket carries at most
// one review. The application pre-checks both, the indexes close the race.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Headline  string    `gorm:"size:128;not null" json:"headline"`
	Body      string    `gorm:"size:8192" json:"body"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_ticket" json:"user_id"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_ticket;uniqueIndex:idx_reviews_ticket" json:"ticket_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Ticket    Ticket    `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"-"`
}

// DisplayTitle is the headline used on feed cards.
func (r Review) DisplayTitle() string {
	return r.Headline
}
