package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"leetstats/backend/config"
	"leetstats/backend/middleware"
	"leetstats/backend/utils"
)

type SessionController struct {
	Cfg *config.Config
}

func NewSessionController(cfg *config.Config) *SessionController {
	return &SessionController{Cfg: cfg}
}

// GetSession godoc
// @Summary Get saved username
// @Description Returns the username remembered by the session cookie
// @Tags session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /session [get]
func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	username, _ := c.Locals(middleware.LocalUsername).(string)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"username": username,
	})
}

// DeleteSession godoc
// @Summary Forget saved username
// @Tags session
// @Success 204
// @Router /session [delete]
func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.NoContent(c)
}
