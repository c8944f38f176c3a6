package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"leetstats/backend/config"
	"leetstats/backend/utils"
)

// LocalUsername is the c.Locals key holding the session's username.
const LocalUsername = "username"

// SessionMiddleware checks the session cookie against the clock now; a nil
// now means time.Now.
func SessionMiddleware(cfg *config.Config, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		username, err := utils.ParseSessionToken(c.Cookies(utils.SessionCookie), now(), cfg)
		if err != nil {
			return utils.Unauthorized(c, "No saved username")
		}
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}
