package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"litrevu/internal/database"
	"litrevu/internal/dto"
	"litrevu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrReviewNotFound masks non-owner access the same way tickets do.
	ErrReviewNotFound = errors.New("review not found")
	// ErrAlreadyReviewed is returned both by the pre-check and when the
	// unique index fires on a concurrent double submit.
	ErrAlreadyReviewed = errors.New("ticket already has a review")
)

type ReviewService struct {
	db      *gorm.DB
	tickets *TicketService
}

func NewReviewService(db *gorm.DB, tickets *TicketService) *ReviewService {
	return &ReviewService{db: db, tickets: tickets}
}

// IsClosed reports whether a ticket already carries a review.
func (s *ReviewService) IsClosed(ticketID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Review{}).Where("ticket_id = ?", ticketID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateForTicket posts a review answering an existing ticket. The pre-check
// and the unique index both guard against a second review; a constraint
// violation at insert time surfaces as the same ErrAlreadyReviewed.
func (s *ReviewService) CreateForTicket(userID, ticketID uuid.UUID, form *dto.ReviewForm) (*models.Review, error) {
	ticket, err := s.tickets.Get(ticketID)
	if err != nil {
		return nil, err
	}

	closed, err := s.IsClosed(ticket.ID)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, ErrAlreadyReviewed
	}

	review := models.Review{
		ID:       uuid.New(),
		Rating:   *form.Rating,
		Headline: form.Headline,
		Body:     form.Body,
		UserID:   userID,
		TicketID: ticket.ID,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// CreateStandalone creates a ticket and its review as one atomic unit; either
// both rows commit or neither does.
func (s *ReviewService) CreateStandalone(userID uuid.UUID, form *dto.StandaloneReviewForm, image *multipart.FileHeader) (*models.Ticket, *models.Review, error) {
	imagePath := ""
	if image != nil {
		stored, err := s.tickets.images.Save(image)
		if err != nil {
			return nil, nil, err
		}
		imagePath = stored
	}

	ticket := models.Ticket{
		ID:          uuid.New(),
		Title:       form.Title,
		Author:      form.Author,
		Description: form.Description,
		ImagePath:   imagePath,
		UserID:      userID,
	}
	review := models.Review{
		ID:       uuid.New(),
		Rating:   *form.Rating,
		Headline: form.Headline,
		Body:     form.Body,
		UserID:   userID,
		TicketID: ticket.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		if imagePath != "" {
			_ = s.tickets.images.Remove(imagePath)
		}
		return nil, nil, fmt.Errorf("failed to create ticket and review: %w", err)
	}
	return &ticket, &review, nil
}

// GetOwned fetches a review only when the requester owns it.
func (s *ReviewService) GetOwned(userID, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := s.db.Scopes(database.OwnedBy(userID)).First(&review, "id = ?", reviewID).Error
	if err != nil {
		return nil, ErrReviewNotFound
	}
	return &review, nil
}

// Update edits an owned review.
func (s *ReviewService) Update(userID, reviewID uuid.UUID, form *dto.ReviewForm) (*models.Review, error) {
	review, err := s.GetOwned(userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = *form.Rating
	review.Headline = form.Headline
	review.Body = form.Body

	if err := s.db.Model(review).Select("Rating", "Headline", "Body").Updates(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes an owned review. Non-owner attempts read as not-found, the
// same masking tickets use.
func (s *ReviewService) Delete(userID, reviewID uuid.UUID) error {
	review, err := s.GetOwned(userID, reviewID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
