package services

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"litrevu/internal/database"
	"litrevu/internal/dto"
	"litrevu/internal/imagestore"
	"litrevu/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTicketNotFound covers both a missing ticket and a non-owner access:
// ownership failures are not distinguished from non-existence so the response
// never confirms the resource to unauthorized callers.
var ErrTicketNotFound = errors.New("ticket not found")

type TicketService struct {
	db     *gorm.DB
	images *imagestore.Store
}

func NewTicketService(db *gorm.DB, images *imagestore.Store) *TicketService {
	return &TicketService{db: db, images: images}
}

// Create stores a new ticket owned by the requester, with an optional cover
// image.
func (s *TicketService) Create(userID uuid.UUID, form *dto.TicketForm, image *multipart.FileHeader) (*models.Ticket, error) {
	imagePath := ""
	if image != nil {
		stored, err := s.images.Save(image)
		if err != nil {
			return nil, err
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
	if err := s.db.Create(&ticket).Error; err != nil {
		if imagePath != "" {
			if rmErr := s.images.Remove(imagePath); rmErr != nil {
				slog.Error("failed to remove orphaned image", "error", rmErr, "path", imagePath)
			}
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &ticket, nil
}

// Get fetches a ticket regardless of owner (review response mode).
func (s *TicketService) Get(ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

// GetOwned fetches a ticket only when the requester owns it.
func (s *TicketService) GetOwned(userID, ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.Scopes(database.OwnedBy(userID)).First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}

// Update edits an owned ticket. Image outcomes: a new upload replaces the
// stored image (and wins over a simultaneous delete flag), the delete flag
// alone removes it, neither preserves it. The flag only applies once the form
// has validated.
func (s *TicketService) Update(userID, ticketID uuid.UUID, form *dto.TicketForm, image *multipart.FileHeader) (*models.Ticket, error) {
	ticket, err := s.GetOwned(userID, ticketID)
	if err != nil {
		return nil, err
	}

	oldImage := ticket.ImagePath
	newImage := ""
	switch {
	case image != nil:
		stored, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		newImage = stored
		ticket.ImagePath = stored
	case form.WantsImageDeleted() && oldImage != "":
		ticket.ImagePath = ""
	}

	ticket.Title = form.Title
	ticket.Author = form.Author
	ticket.Description = form.Description

	if err := s.db.Model(ticket).Select("Title", "Author", "Description", "ImagePath").Updates(ticket).Error; err != nil {
		if newImage != "" {
			if rmErr := s.images.Remove(newImage); rmErr != nil {
				slog.Error("failed to remove orphaned image", "error", rmErr, "path", newImage)
			}
		}
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	// Old file goes only after the row is saved.
	if oldImage != "" && oldImage != ticket.ImagePath {
		if err := s.images.Remove(oldImage); err != nil {
			slog.Error("failed to remove replaced image", "error", err, "path", oldImage)
		}
	}
	return ticket, nil
}

// Delete removes an owned ticket, its review and its stored image.
func (s *TicketService) Delete(userID, ticketID uuid.UUID) error {
	ticket, err := s.GetOwned(userID, ticketID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticket.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(ticket).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	if err := s.images.Remove(ticket.ImagePath); err != nil {
		slog.Error("failed to remove ticket image", "error", err, "path", ticket.ImagePath)
	}
	return nil
}
