package handlers

import (
	"log/slog"

	"litrevu/internal/dto"
	"litrevu/internal/middleware"
	"litrevu/internal/services"

	"github.com/gofiber/fiber/v2"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Feed handles GET /feed. An X-Requested-With: XMLHttpRequest marker selects
// the partial payload; the aggregation itself is identical in both modes.
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := services.ParsePage(c.Query("page"))
	feedPage, err := h.feedService.Feed(userID, page)
	if err != nil {
		slog.Error("feed assembly failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load feed",
		})
	}

	partial := c.Get("X-Requested-With") == "XMLHttpRequest"
	if partial {
		return c.JSON(feedPage)
	}

	return c.JSON(fiber.Map{
		"view":       "feed",
		"items":      feedPage.Items,
		"pagination": feedPage.Pagination,
	})
}

// MyPosts handles GET /posts: only the requester's own tickets and reviews,
// merged like the feed.
func (h *FeedHandler) MyPosts(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	items, err := h.feedService.MyPosts(userID)
	if err != nil {
		slog.Error("my-posts lookup failed", "error", err, "user_id", userID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load posts",
		})
	}

	return c.JSON(fiber.Map{
		"view":             "my_posts",
		"items":            items,
		"is_my_posts_page": true,
	})
}
