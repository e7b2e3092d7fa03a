package middleware

import (
	"errors"

	"litrevu/internal/config"
	"litrevu/internal/dto"
	"litrevu/internal/services"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Protected verifies the signed session token carried in the session cookie.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.SessionSecret)},
		TokenLookup: "cookie:" + cfg.SessionCookieName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: login required",
			})
		},
	})
}

// RequireSession checks the server-side session row behind the cookie, so a
// logged-out token stops working even before its signature expires. The
// session's user id lands in locals for the handlers.
func RequireSession(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.SessionCookieName)
		session, err := auth.ValidateSession(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: session expired or revoked",
			})
		}
		c.Locals("user_id", session.UserID)
		return c.Next()
	}
}

// UserID extracts the authenticated user's id set by RequireSession.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("no authenticated user in context")
	}
	return id, nil
}
