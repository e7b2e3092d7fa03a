package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows owned by the given user. Ownership checks
// go through this scope so a non-owner lookup simply finds nothing, which the
// handlers surface as not-found rather than forbidden.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
