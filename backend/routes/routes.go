package routes

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"leetstats/backend/config"
	"leetstats/backend/controllers"
	"leetstats/backend/leetcode"
	"leetstats/backend/middleware"
	"leetstats/backend/utils"
)

// NewApp returns a Fiber app using goccy/go-json and the JSON error envelope.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "leetstats",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: utils.ErrorHandler,
	})
}

// Deps bundles what the route handlers need.
type Deps struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Client leetcode.ProfileFetcher
	Logger zerolog.Logger
	// Now overrides the clock used for heatmaps and sessions.
	Now func() time.Time
}

func SetupRoutes(app *fiber.App, deps Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return utils.Error(c, fiber.StatusTooManyRequests, fiber.ErrTooManyRequests)
		},
	}))

	// Stats routes
	statsController := controllers.NewStatsController(deps.DB, deps.Cfg, deps.Client, deps.Logger)
	if deps.Now != nil {
		statsController.Now = deps.Now
	}
	api.Get("/user_stats/:username?", statsController.GetUserStats)

	// Session routes
	sessionMiddleware := middleware.SessionMiddleware(deps.Cfg, deps.Now)
	sessionController := controllers.NewSessionController(deps.Cfg)
	api.Get("/session", sessionMiddleware, sessionController.GetSession)
	api.Delete("/session", sessionController.DeleteSession)

	// Users routes
	usersController := controllers.NewUsersController(deps.DB)
	api.Get("/users/recent", usersController.GetRecentUsers)
}
