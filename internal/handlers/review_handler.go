package handlers

import (
	"errors"

	"litrevu/internal/dto"
	"litrevu/internal/middleware"
	"litrevu/internal/services"
	"litrevu/internal/toast"
	"litrevu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const alreadyReviewedMsg = "You have already posted a review for this ticket."

type ReviewHandler struct {
	reviewService *services.ReviewService
	ticketService *services.TicketService
}

func NewReviewHandler(reviewService *services.ReviewService, ticketService *services.TicketService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, ticketService: ticketService}
}

// NewForTicket handles GET /review/create/:ticket_id: the response-mode form
// prefill. A ticket that already has a review redirects away with an error
// toast, matching the submit path.
func (h *ReviewHandler) NewForTicket(c *fiber.Ctx) error {
	_, ticketID, ok := ownerAndParam(c, "ticket_id")
	if !ok {
		return nil
	}

	ticket, err := h.ticketService.Get(ticketID)
	if err != nil {
		return notFound(c, "Ticket not found")
	}

	closed, err := h.reviewService.IsClosed(ticket.ID)
	if err != nil {
		return serverError(c, "Failed to load ticket")
	}
	if closed {
		return toast.Redirect(c, "/feed", toast.Error, alreadyReviewedMsg)
	}

	return c.JSON(fiber.Map{"ticket": ticket, "is_response_mode": true})
}

// CreateForTicket handles POST /review/create/:ticket_id (response mode).
func (h *ReviewHandler) CreateForTicket(c *fiber.Ctx) error {
	userID, ticketID, ok := ownerAndParam(c, "ticket_id")
	if !ok {
		return nil
	}

	var form dto.ReviewForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	if fields := validation.Struct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	_, err := h.reviewService.CreateForTicket(userID, ticketID, &form)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return notFound(c, "Ticket not found")
		case errors.Is(err, services.ErrAlreadyReviewed):
			// Covers both the pre-check and a constraint violation from a
			// concurrent double submit.
			return toast.Redirect(c, "/feed", toast.Error, alreadyReviewedMsg)
		}
		return serverError(c, "Failed to create review")
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// CreateStandalone handles POST /review/create: one submission that creates
// a ticket and its review together, or nothing at all.
func (h *ReviewHandler) CreateStandalone(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var form dto.StandaloneReviewForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	if fields := validation.Struct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	if _, _, err := h.reviewService.CreateStandalone(userID, &form, formImage(c)); err != nil {
		if fields := imageFieldError(err); fields != nil {
			return validationFailed(c, fields)
		}
		return serverError(c, "Failed to create review")
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// Edit handles GET /review/:id/edit with the usual not-found masking.
func (h *ReviewHandler) Edit(c *fiber.Ctx) error {
	userID, reviewID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	review, err := h.reviewService.GetOwned(userID, reviewID)
	if err != nil {
		return notFound(c, "Review not found")
	}

	ticket, err := h.ticketService.Get(review.TicketID)
	if err != nil {
		return serverError(c, "Failed to load review")
	}
	return c.JSON(fiber.Map{"review": review, "ticket": ticket, "editing": true})
}

// Update handles POST /review/:id/edit.
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	userID, reviewID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	var form dto.ReviewForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	if fields := validation.Struct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	if _, err := h.reviewService.Update(userID, reviewID, &form); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return notFound(c, "Review not found")
		}
		return serverError(c, "Failed to update review")
	}

	return toast.Redirect(c, "/posts", toast.Success, "The review was updated.")
}

// Delete handles POST /review/:id/delete. Non-owner attempts read as
// not-found, the same masking tickets use.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, reviewID, ok := ownerAndParam(c, "id")
	if !ok {
		return nil
	}

	if err := h.reviewService.Delete(userID, reviewID); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			return notFound(c, "Review not found")
		}
		return serverError(c, "Failed to delete review")
	}

	return toast.Redirect(c, "/posts", toast.Success, "The review was deleted.")
}
