package controllers

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"leetstats/backend/calendar"
	"leetstats/backend/config"
	"leetstats/backend/leetcode"
	"leetstats/backend/metrics"
	"leetstats/backend/models"
	"leetstats/backend/utils"
)

type StatsController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Client leetcode.ProfileFetcher
	Logger zerolog.Logger
	Now    func() time.Time
}

func NewStatsController(db *gorm.DB, cfg *config.Config, client leetcode.ProfileFetcher, logger zerolog.Logger) *StatsController {
	return &StatsController{DB: db, Cfg: cfg, Client: client, Logger: logger, Now: time.Now}
}

// GetUserStats godoc
// @Summary Get user stats
// @Description Fetches the LeetCode profile and returns it with calendar statistics and the heatmap grid
// @Tags stats
// @Produce json
// @Param username path string true "LeetCode username"
// @Success 200 {object} models.UserStats
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /user_stats/{username} [get]
func (sc *StatsController) GetUserStats(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if unescaped, err := url.PathUnescape(username); err == nil {
		username = strings.TrimSpace(unescaped)
	}
	if username == "" {
		return utils.BadRequest(c, "Username cannot be empty")
	}

	profile, err := sc.Client.FetchProfile(c.UserContext(), username)
	if err != nil {
		return sc.upstreamError(c, username, err)
	}

	cal, err := profile.SubmissionCalendar.Resolve()
	if err != nil {
		metrics.CalendarFallbacks.Inc()
		sc.Logger.Warn().
			Err(err).
			Str("username", username).
			Stringer("kind", profile.SubmissionCalendar.Kind).
			Msg("submission calendar unreadable, using empty calendar")
	}

	now := sc.Now()
	stats := models.UserStats{
		Username:           username,
		TotalSolved:        profile.TotalSolved,
		TotalQuestions:     profile.TotalQuestions,
		Ranking:            profile.Ranking,
		AcceptanceRate:     profile.AcceptanceRate,
		ContributionPoints: profile.ContributionPoints,
		Reputation:         profile.Reputation,
		Difficulty:         profile.Difficulties(),
		CalendarStats:      calendar.ComputeStats(cal),
		Heatmap:            calendar.BuildHeatmap(cal, now),
		SubmissionCalendar: cal.Encode(),
	}

	if err := sc.trackUser(username, now); err != nil {
		sc.Logger.Error().Err(err).Str("username", username).Msg("failed to record username")
	}

	token, err := utils.GenerateSessionToken(username, now, sc.Cfg)
	if err != nil {
		sc.Logger.Error().Err(err).Msg("failed to sign session token")
	} else {
		c.Cookie(&fiber.Cookie{
			Name:     utils.SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  now.Add(sc.Cfg.SessionTTL),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	return utils.Success(c, fiber.StatusOK, stats)
}

func (sc *StatsController) upstreamError(c *fiber.Ctx, username string, err error) error {
	var httpErr *leetcode.HTTPError

	switch {
	case errors.Is(err, leetcode.ErrEmptyUsername):
		return utils.BadRequest(c, "Username cannot be empty")
	case errors.Is(err, leetcode.ErrUserNotFound):
		return utils.NotFound(c, err.Error())
	case errors.As(err, &httpErr) && httpErr.StatusCode >= 400:
		return utils.Error(c, httpErr.StatusCode, errors.New("LeetCode user not found or API error"))
	case errors.Is(err, leetcode.ErrUpstreamUnavailable):
		sc.Logger.Warn().Err(err).Str("username", username).Msg("LeetCode API unavailable")
		return utils.ServiceUnavailable(c, err.Error())
	default:
		sc.Logger.Error().Err(err).Str("username", username).Msg("unexpected LeetCode API response")
		return utils.Error(c, fiber.StatusBadGateway, err)
	}
}

// trackUser inserts the username or bumps its lookup count.
func (sc *StatsController) trackUser(username string, now time.Time) error {
	user := models.TrackedUser{
		Username:      username,
		LastFetchedAt: now,
		LookupCount:   1,
	}
	return sc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_fetched_at": now,
			"lookup_count":    gorm.Expr("tracked_users.lookup_count + 1"),
			"updated_at":      now,
			"deleted_at":      nil,
		}),
	}).Create(&user).Error
}
