package handlers

import (
	"errors"
	"fmt"

	"litrevu/internal/dto"
	"litrevu/internal/middleware"
	"litrevu/internal/models"
	"litrevu/internal/services"
	"litrevu/internal/toast"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FollowHandler struct {
	followService *services.FollowService
}

func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// List handles GET /follows: who the requester follows and who follows them.
func (h *FollowHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	following, err := h.followService.Following(userID)
	if err != nil {
		return serverError(c, "Failed to load follows")
	}
	followers, err := h.followService.Followers(userID)
	if err != nil {
		return serverError(c, "Failed to load follows")
	}

	return c.JSON(dto.FollowListResponse{
		Following: toUserResponses(following),
		Followers: toUserResponses(followers),
	})
}

// Follow handles POST /follows. Every outcome is a toast redirect back to the
// follows page; the message reflects the first failing validation rule.
func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var form dto.FollowForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c)
	}

	target, err := h.followService.Follow(userID, form.Username)
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		return toast.Redirect(c, "/follows", toast.Error, "Please enter a username.")
	case errors.Is(err, services.ErrUserNotFound):
		return toast.Redirect(c, "/follows", toast.Error, "This user does not exist.")
	case errors.Is(err, services.ErrSelfFollow):
		return toast.Redirect(c, "/follows", toast.Error, "You cannot follow yourself.")
	case errors.Is(err, services.ErrAlreadyFollowing):
		return toast.Redirect(c, "/follows", toast.Info,
			fmt.Sprintf("You already follow %s.", target.Username))
	case err != nil:
		return serverError(c, "Failed to follow user")
	}

	return toast.Redirect(c, "/follows", toast.Success,
		fmt.Sprintf("You now follow %s.", target.Username))
}

// Unfollow handles POST /follows/unfollow/:user_id. A GET performs no
// mutation and lands on the follows page (see routes).
func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return toast.Redirect(c, "/follows", toast.Error, "User not found.")
	}

	target, err := h.followService.Unfollow(userID, targetID)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return toast.Redirect(c, "/follows", toast.Error, "User not found.")
	case errors.Is(err, services.ErrNotFollowing):
		return toast.Redirect(c, "/follows", toast.Error, "You do not follow this user.")
	case err != nil:
		return serverError(c, "Failed to unfollow user")
	}

	return toast.Redirect(c, "/follows", toast.Info,
		fmt.Sprintf("You no longer follow %s.", target.Username))
}

// UnfollowRedirect answers GET requests to the unfollow action with a plain
// redirect, never a mutation.
func (h *FollowHandler) UnfollowRedirect(c *fiber.Ctx) error {
	return c.Redirect("/follows", fiber.StatusSeeOther)
}

func toUserResponses(users []models.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.UserResponse{ID: u.ID, Username: u.Username}
	}
	return out
}
