package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"leetstats/backend/models"
	"leetstats/backend/utils"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

type UsersController struct {
	DB *gorm.DB
}

func NewUsersController(db *gorm.DB) *UsersController {
	return &UsersController{DB: db}
}

// GetRecentUsers godoc
// @Summary Recently viewed users
// @Description Returns the usernames whose stats were fetched most recently
// @Tags users
// @Produce json
// @Param limit query int false "Max results (1-50)"
// @Success 200 {array} models.RecentUser
// @Router /users/recent [get]
func (uc *UsersController) GetRecentUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultRecentLimit)
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var users []models.TrackedUser
	if err := uc.DB.Order("last_fetched_at desc").Limit(limit).Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, err)
	}

	recent := make([]models.RecentUser, 0, len(users))
	for _, u := range users {
		recent = append(recent, models.RecentUser{
			Username:      u.Username,
			LastFetchedAt: u.LastFetchedAt,
			LookupCount:   u.LookupCount,
		})
	}
	return utils.Success(c, fiber.StatusOK, recent)
}
