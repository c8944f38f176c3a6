package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"leetstats/backend/calendar"
	"leetstats/backend/config"
	"leetstats/backend/leetcode"
	"leetstats/backend/models"
	"leetstats/backend/utils"
)

type fakeFetcher struct {
	profiles map[string]*models.Profile
	errs     map[string]error
	calls    int
}

func (f *fakeFetcher) FetchProfile(_ context.Context, username string) (*models.Profile, error) {
	f.calls++
	if err, ok := f.errs[username]; ok {
		return nil, err
	}
	if p, ok := f.profiles[username]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: user does not exist", leetcode.ErrUserNotFound)
}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	fetcher *fakeFetcher
	now     time.Time
}

// 2024-06-12 is a Wednesday.
var testNow = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)

func setup(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		JWTSecret:  "testsecret",
		SessionTTL: time.Hour,
	}
	db, err := utils.InitDB(cfg)
	require.NoError(t, err)

	env := &testEnv{
		db:      db,
		fetcher: &fakeFetcher{profiles: map[string]*models.Profile{}, errs: map[string]error{}},
		now:     testNow,
	}
	env.app = NewApp()
	SetupRoutes(env.app, Deps{
		DB:     db,
		Cfg:    cfg,
		Client: env.fetcher,
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return env.now },
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out.Data
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == utils.SessionCookie {
			return c
		}
	}
	return nil
}

func profileWithCalendar(raw calendar.RawCalendar) *models.Profile {
	return &models.Profile{
		Status:             "success",
		TotalSolved:        42,
		EasySolved:         20,
		TotalEasy:          800,
		MediumSolved:       15,
		TotalMedium:        1600,
		HardSolved:         7,
		TotalHard:          700,
		Ranking:            98765,
		SubmissionCalendar: raw,
	}
}

func TestGetUserStats(t *testing.T) {
	env := setup(t)
	today := calendar.BucketOf(testNow)
	env.fetcher.profiles["alice"] = profileWithCalendar(calendar.NewRawString(fmt.Sprintf(
		`{"%d": 1, "%d": 2, "%d": 12}`, today-2*calendar.SecondsPerDay, today-calendar.SecondsPerDay, today,
	)))

	resp := env.do(t, http.MethodGet, "/api/user_stats/alice")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, sessionCookie(resp))

	stats := decode[models.UserStats](t, resp)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 42, stats.TotalSolved)
	assert.Equal(t, 98765, stats.Ranking)
	assert.Equal(t, calendar.Stats{TotalSubmissions: 15, ActiveDays: 3, MaxStreak: 3}, stats.CalendarStats)
	assert.Equal(t, []models.DifficultyBreakdown{
		{Name: "Easy", Solved: 20, Total: 800},
		{Name: "Medium", Solved: 15, Total: 1600},
		{Name: "Hard", Solved: 7, Total: 700},
	}, stats.Difficulty)
	assert.Len(t, stats.SubmissionCalendar, 3)

	require.Len(t, stats.Heatmap, 39)
	assert.Equal(t, time.Sunday, stats.Heatmap[0].DayBucket.Time().Weekday())
	n := len(stats.Heatmap)
	assert.Equal(t, today, stats.Heatmap[n-1].DayBucket)
	assert.Equal(t, []int{1, 1, 4}, []int{stats.Heatmap[n-3].Level, stats.Heatmap[n-2].Level, stats.Heatmap[n-1].Level})
}

func TestGetUserStatsMalformedCalendar(t *testing.T) {
	env := setup(t)
	env.fetcher.profiles["bob"] = profileWithCalendar(calendar.NewRawString("{definitely not json"))

	resp := env.do(t, http.MethodGet, "/api/user_stats/bob")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := decode[models.UserStats](t, resp)
	assert.Equal(t, 42, stats.TotalSolved)
	assert.Equal(t, calendar.Stats{}, stats.CalendarStats)
	assert.Len(t, stats.Heatmap, 39)
	for _, cell := range stats.Heatmap {
		assert.Zero(t, cell.Level)
	}
}

func TestGetUserStatsErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"empty username", "/api/user_stats/", nil, fiber.StatusBadRequest},
		{"blank username", "/api/user_stats/%20%20", nil, fiber.StatusBadRequest},
		{"unknown user", "/api/user_stats/ghost", nil, fiber.StatusNotFound},
		{"upstream down", "/api/user_stats/down", fmt.Errorf("%w: dial tcp", leetcode.ErrUpstreamUnavailable), fiber.StatusServiceUnavailable},
		{"upstream 500", "/api/user_stats/broken", &leetcode.HTTPError{StatusCode: 500}, fiber.StatusInternalServerError},
		{"upstream garbage", "/api/user_stats/garbage", fmt.Errorf("%w: decoding profile", leetcode.ErrUpstream), fiber.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			if tt.err != nil {
				username := tt.target[strings.LastIndex(tt.target, "/")+1:]
				env.fetcher.errs[username] = tt.err
			}

			resp := env.do(t, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Nil(t, sessionCookie(resp))

			var count int64
			env.db.Model(&models.TrackedUser{}).Count(&count)
			assert.Zero(t, count)
		})
	}
}

func TestGetUserStatsTracksUsers(t *testing.T) {
	env := setup(t)
	env.fetcher.profiles["alice"] = profileWithCalendar(calendar.RawCalendar{})
	env.fetcher.profiles["bob"] = profileWithCalendar(calendar.RawCalendar{})

	env.do(t, http.MethodGet, "/api/user_stats/alice")
	env.now = testNow.Add(time.Minute)
	env.do(t, http.MethodGet, "/api/user_stats/bob")
	env.now = testNow.Add(2 * time.Minute)
	env.do(t, http.MethodGet, "/api/user_stats/alice")

	var alice models.TrackedUser
	require.NoError(t, env.db.Where("username = ?", "alice").First(&alice).Error)
	assert.Equal(t, 2, alice.LookupCount)

	resp := env.do(t, http.MethodGet, "/api/users/recent")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	recent := decode[[]models.RecentUser](t, resp)
	require.Len(t, recent, 2)
	assert.Equal(t, "alice", recent[0].Username)
	assert.Equal(t, "bob", recent[1].Username)

	resp = env.do(t, http.MethodGet, "/api/users/recent?limit=1")
	recent = decode[[]models.RecentUser](t, resp)
	assert.Len(t, recent, 1)
}

func TestSession(t *testing.T) {
	env := setup(t)
	env.fetcher.profiles["alice"] = profileWithCalendar(calendar.RawCalendar{})

	resp := env.do(t, http.MethodGet, "/api/session")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/user_stats/alice")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	resp = env.do(t, http.MethodGet, "/api/session", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	session := decode[map[string]string](t, resp)
	assert.Equal(t, "alice", session["username"])

	resp = env.do(t, http.MethodDelete, "/api/session", cookie)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestSessionFollowsInjectedClock(t *testing.T) {
	env := setup(t)
	env.now = time.Date(2093, time.November, 3, 12, 0, 0, 0, time.UTC)
	env.fetcher.profiles["alice"] = profileWithCalendar(calendar.RawCalendar{})

	resp := env.do(t, http.MethodGet, "/api/user_stats/alice")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	env.now = env.now.Add(30 * time.Minute)
	resp = env.do(t, http.MethodGet, "/api/session", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env.now = env.now.Add(2 * time.Hour)
	resp = env.do(t, http.MethodGet, "/api/session", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	env := setup(t)

	resp := env.do(t, http.MethodGet, "/healthz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/metrics")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}
