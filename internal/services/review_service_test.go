package services_test

import (
	"testing"
	"time"

	"litrevu/internal/dto"
	"litrevu/internal/models"
	"litrevu/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB, t *testing.T) *services.ReviewService {
	tickets := services.NewTicketService(db, newImageStore(t))
	return services.NewReviewService(db, tickets)
}

func TestCreateReviewForTicket(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ticket := createTicket(t, db, alice, "Dune", time.Now())

	svc := newReviewService(db, t)
	review, err := svc.CreateForTicket(bob.ID, ticket.ID, reviewForm(5, "Masterpiece"))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, review.UserID)
	assert.Equal(t, ticket.ID, review.TicketID)
}

func TestCreateReviewUnknownTicket(t *testing.T) {
	db := setupDB(t)
	bob := createUser(t, db, "bob")

	svc := newReviewService(db, t)
	_, err := svc.CreateForTicket(bob.ID, uuid.New(), reviewForm(3, "x"))
	assert.ErrorIs(t, err, services.ErrTicketNotFound)
}

func TestSecondReviewBlocked(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	ticket := createTicket(t, db, alice, "Dune", time.Now())

	svc := newReviewService(db, t)
	_, err := svc.CreateForTicket(bob.ID, ticket.ID, reviewForm(5, "first"))
	require.NoError(t, err)

	// Same user again.
	_, err = svc.CreateForTicket(bob.ID, ticket.ID, reviewForm(4, "second"))
	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)

	// Different user, same ticket: the ticket-level constraint applies.
	_, err = svc.CreateForTicket(carol.ID, ticket.ID, reviewForm(2, "third"))
	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDoubleSubmitRaceHitsUniqueIndex(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ticket := createTicket(t, db, alice, "Dune", time.Now())

	// Two writes that both passed the pre-check; the second insert must fail
	// on the unique index and translate to a duplicate-key error.
	first := models.Review{ID: uuid.New(), Rating: 4, Headline: "a", UserID: bob.ID, TicketID: ticket.ID}
	second := models.Review{ID: uuid.New(), Rating: 4, Headline: "b", UserID: bob.ID, TicketID: ticket.ID}

	require.NoError(t, db.Create(&first).Error)
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStandaloneCreatesBoth(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")

	svc := newReviewService(db, t)
	rating := 5
	form := &dto.StandaloneReviewForm{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Rating:   &rating,
		Headline: "Masterpiece",
	}
	ticket, review, err := svc.CreateStandalone(alice.ID, form, nil)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, review.TicketID)
	assert.Equal(t, alice.ID, ticket.UserID)
	assert.Equal(t, alice.ID, review.UserID)

	var tickets, reviews int64
	require.NoError(t, db.Model(&models.Ticket{}).Count(&tickets).Error)
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	assert.EqualValues(t, 1, tickets)
	assert.EqualValues(t, 1, reviews)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ticket := createTicket(t, db, alice, "Dune", time.Now())
	review := createReview(t, db, bob, ticket, "original", time.Now())

	svc := newReviewService(db, t)

	_, err := svc.Update(alice.ID, review.ID, reviewForm(1, "hijacked"))
	assert.ErrorIs(t, err, services.ErrReviewNotFound,
		"a non-owner edit must read as not-found")

	var unchanged models.Review
	require.NoError(t, db.First(&unchanged, "id = ?", review.ID).Error)
	assert.Equal(t, "original", unchanged.Headline)

	updated, err := svc.Update(bob.ID, review.ID, reviewForm(2, "revised"))
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Headline)
	assert.Equal(t, 2, updated.Rating)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ticket := createTicket(t, db, alice, "Dune", time.Now())
	review := createReview(t, db, bob, ticket, "mine", time.Now())

	svc := newReviewService(db, t)

	err := svc.Delete(alice.ID, review.ID)
	assert.ErrorIs(t, err, services.ErrReviewNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(bob.ID, review.ID))
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
