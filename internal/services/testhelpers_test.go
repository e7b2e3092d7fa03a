package services_test

import (
	"fmt"
	"testing"
	"time"

	"litrevu/internal/config"
	"litrevu/internal/database"
	"litrevu/internal/dto"
	"litrevu/internal/imagestore"
	"litrevu/internal/models"
	"litrevu/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int

// setupDB opens a fresh in-memory SQLite database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbCounter++
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SessionSecret:     "test-secret",
		SessionExpiry:     12 * time.Hour,
		RememberMeExpiry:  14 * 24 * time.Hour,
		SessionCookieName: "litrevu_session",
	}
}

func newImageStore(t *testing.T) *imagestore.Store {
	t.Helper()
	store, err := imagestore.New(t.TempDir(), 4*1024*1024)
	require.NoError(t, err)
	return store
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTicket(t *testing.T, db *gorm.DB, owner *models.User, title string, createdAt time.Time) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{
		ID:        uuid.New(),
		Title:     title,
		UserID:    owner.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func createReview(t *testing.T, db *gorm.DB, owner *models.User, ticket *models.Ticket, headline string, createdAt time.Time) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:        uuid.New(),
		Rating:    4,
		Headline:  headline,
		UserID:    owner.ID,
		TicketID:  ticket.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

func follow(t *testing.T, db *gorm.DB, follower, followed *models.User) {
	t.Helper()
	svc := services.NewFollowService(db)
	_, err := svc.Follow(follower.ID, followed.Username)
	require.NoError(t, err)
}

func reviewForm(rating int, headline string) *dto.ReviewForm {
	return &dto.ReviewForm{Rating: &rating, Headline: headline, Body: "body"}
}
