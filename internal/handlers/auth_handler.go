package handlers

import (
	"errors"
	"net/url"
	"time"

	"litrevu/internal/config"
	"litrevu/internal/dto"
	"litrevu/internal/services"
	"litrevu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	cfg         *config.Config
	authService *services.AuthService
}

func NewAuthHandler(cfg *config.Config, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authService: authService}
}

// Home handles GET /, the login landing page.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	_, err := h.authService.ValidateSession(c.Cookies(h.cfg.SessionCookieName))
	return c.JSON(fiber.Map{
		"authenticated": err == nil,
	})
}

// Register handles POST /register. On success it redirects home with the
// query string the toast layer consumes.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	fields := validation.Struct(&form)
	if form.Password1 != form.Password2 {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["password2"] = "The two password fields do not match."
	}
	if fields != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrorResponse{
			Error: true, Message: "Validation failed", Fields: fields,
		})
	}

	user, err := h.authService.Register(&form)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrorResponse{
				Error: true, Message: "Validation failed",
				Fields: map[string]string{"username": "This username is already taken."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	qs := url.Values{}
	qs.Set("registered", "1")
	qs.Set("u", user.Username)
	return c.Redirect("/?"+qs.Encode(), fiber.StatusSeeOther)
}

// Login handles POST /. The session lifetime comes from the remember-me
// flag: a persistent two-week cookie, or a browser-session cookie backed by a
// shorter server-side expiry.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	_, token, sc, err := h.authService.Login(&form)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Incorrect username or password.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	cookie := &fiber.Cookie{
		Name:     h.cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if sc.Persistent {
		cookie.Expires = time.Now().Add(sc.TTL)
	}
	c.Cookie(cookie)

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

// Logout handles POST /logout: revoke the session, drop the cookie, redirect
// home with the toast query parameter.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Cookies(h.cfg.SessionCookieName)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}
	c.ClearCookie(h.cfg.SessionCookieName)
	return c.Redirect("/?logout=1", fiber.StatusSeeOther)
}
