// Package leetcode fetches public profile statistics from the LeetCode stats
// API, guarded by a rate limiter and a circuit breaker.
package leetcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"leetstats/backend/metrics"
	"leetstats/backend/models"
)

const (
	// maxErrorBodySize caps how much of an error response is kept.
	maxErrorBodySize = 4 * 1024

	breakerName = "leetcode-api"
)

// ProfileFetcher is implemented by Client; controllers depend on it so tests
// can substitute a fake.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.Profile, error)
}

type ClientConfig struct {
	Endpoint   string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int

	// ConsecutiveFailures opens the breaker; defaults to 5.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open; defaults to 30s.
	OpenTimeout time.Duration

	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[*models.Profile]
	logger   zerolog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Limit(cfg.RatePerSec)
	if cfg.RatePerSec <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "leetcode").Logger()
	}

	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	c := &Client{
		endpoint: endpoint,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   logger,
	}

	metrics.CircuitState.Set(0)
	c.cb = gobreaker.NewCircuitBreaker[*models.Profile](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitState.Set(stateValue(to))
		},
	})

	return c
}

// FetchProfile returns the profile for username.
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	start := time.Now()
	profile, err := c.cb.Execute(func() (*models.Profile, error) {
		return c.fetch(ctx, username)
	})
	metrics.UpstreamLatency.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.UpstreamRequests.WithLabelValues("success").Inc()
		return profile, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.UpstreamRequests.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	case errors.Is(err, ErrUserNotFound):
		metrics.UpstreamRequests.WithLabelValues("not_found").Inc()
		return nil, err
	case errors.Is(err, context.Canceled):
		metrics.UpstreamRequests.WithLabelValues("canceled").Inc()
		return nil, err
	default:
		metrics.UpstreamRequests.WithLabelValues("failure").Inc()
		c.logger.Warn().Err(err).Str("username", username).Msg("profile request failed")
		return nil, err
	}
}

func (c *Client) fetch(ctx context.Context, username string) (*models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var profile models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decoding profile: %v", ErrUpstream, err)
	}

	if profile.Status == "error" {
		msg := profile.Message
		if msg == "" {
			msg = "user does not exist"
		}
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, msg)
	}

	return &profile, nil
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
