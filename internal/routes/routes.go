package routes

import (
	"time"

	"litrevu/internal/config"
	"litrevu/internal/handlers"
	"litrevu/internal/middleware"
	"litrevu/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	feedHandler *handlers.FeedHandler,
	ticketHandler *handlers.TicketHandler,
	reviewHandler *handlers.ReviewHandler,
	followHandler *handlers.FollowHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Auth surface; stricter rate limit: 10 req/min per IP
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Get("/", authHandler.Home)
	app.Post("/", authLimit, authHandler.Login)
	app.Post("/register", authLimit, authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Everything below requires a live session.
	protected := app.Group("", middleware.Protected(cfg), middleware.RequireSession(cfg, authService))

	protected.Get("/feed", feedHandler.Feed)
	protected.Get("/posts", feedHandler.MyPosts)

	protected.Post("/ticket/create", ticketHandler.Create)
	protected.Get("/ticket/:id/edit", ticketHandler.Edit)
	protected.Post("/ticket/:id/edit", ticketHandler.Update)
	protected.Post("/ticket/:id/delete", ticketHandler.Delete)

	protected.Post("/review/create", reviewHandler.CreateStandalone)
	protected.Get("/review/create/:ticket_id", reviewHandler.NewForTicket)
	protected.Post("/review/create/:ticket_id", reviewHandler.CreateForTicket)
	protected.Get("/review/:id/edit", reviewHandler.Edit)
	protected.Post("/review/:id/edit", reviewHandler.Update)
	protected.Post("/review/:id/delete", reviewHandler.Delete)

	protected.Get("/follows", followHandler.List)
	protected.Post("/follows", followHandler.Follow)
	// GET on the unfollow action never mutates; it just lands back on the
	// follows page.
	protected.Get("/follows/unfollow/:user_id", followHandler.UnfollowRedirect)
	protected.Post("/follows/unfollow/:user_id", followHandler.Unfollow)
}
