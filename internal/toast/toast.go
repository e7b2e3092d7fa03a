// Package toast implements the redirect-with-notification contract: mutating
// handlers redirect with toast_type/toast_msg query parameters and the
// frontend displays the transient notice.
package toast

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

const (
	Success = "success"
	Info    = "info"
	Error   = "error"
)

// Redirect sends a 303 to the target path with the toast parameters appended.
func Redirect(c *fiber.Ctx, to, kind, msg string) error {
	qs := url.Values{}
	qs.Set("toast_type", kind)
	qs.Set("toast_msg", msg)
	return c.Redirect(to+"?"+qs.Encode(), fiber.StatusSeeOther)
}
