package handlers

import (
	"errors"
	"mime/multipart"

	"litrevu/internal/dto"
	"litrevu/internal/imagestore"
	"litrevu/internal/middleware"
	"litrevu/internal/services"
	"litrevu/internal/toast"
	"litrevu/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create handles POST /ticket/create.
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var form dto.TicketForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	if fields := validation.Struct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	if _, err := h.ticketService.Create(userID, &form, formImage(c)); err != nil {
		if fields := imageFieldError(err); fields != nil {
			return validationFailed(c, fields)
		}
		return serverError(c, "Failed to create ticket")
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// Edit handles GET /ticket/:id/edit, returning the owned ticket for form
// prefill. Non-owner lookups read as not-found.
func (h *TicketHandler) Edit(c *fiber.Ctx) error {
	userID, ticketID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	ticket, err := h.ticketService.GetOwned(userID, ticketID)
	if err != nil {
		return notFound(c, "Ticket not found")
	}
	return c.JSON(fiber.Map{"ticket": ticket, "editing": true})
}

// Update handles POST /ticket/:id/edit.
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	userID, ticketID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	var form dto.TicketForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	if fields := validation.Struct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	if _, err := h.ticketService.Update(userID, ticketID, &form, formImage(c)); err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			return notFound(c, "Ticket not found")
		}
		if fields := imageFieldError(err); fields != nil {
			return validationFailed(c, fields)
		}
		return serverError(c, "Failed to update ticket")
	}

	return toast.Redirect(c, "/posts", toast.Success, "The ticket was updated.")
}

// Delete handles POST /ticket/:id/delete. POST-only so link prefetching can
// never trigger it.
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	userID, ticketID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.ticketService.Delete(userID, ticketID); err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			return notFound(c, "Ticket not found")
		}
		return serverError(c, "Failed to delete ticket")
	}

	return toast.Redirect(c, "/posts", toast.Success, "The ticket was deleted.")
}

// formImage returns the optional image part, nil when absent.
func formImage(c *fiber.Ctx) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return fh
}

func imageFieldError(err error) map[string]string {
	switch {
	case errors.Is(err, imagestore.ErrNotImage):
		return map[string]string{"image": "Upload a valid image."}
	case errors.Is(err, imagestore.ErrImageTooLarge):
		return map[string]string{"image": "The image is too large."}
	}
	return nil
}

// ownerAndParam resolves the authenticated user and a uuid path parameter,
// writing the response itself when either fails. A malformed id reads the
// same as a missing record.
func ownerAndParam(c *fiber.Ctx, name string) (uuid.UUID, uuid.UUID, bool) {
	userID, err := middleware.UserID(c)
	if err != nil {
		_ = unauthorized(c)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		_ = notFound(c, "Not found")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func validationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrorResponse{
		Error: true, Message: "Validation failed", Fields: fields,
	})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}
