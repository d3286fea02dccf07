// Package remote is the HTTP gateway to the REST backend that owns the
// five domain collections. Each domain store talks to one Resource; all
// resources share one Client carrying the bearer token, a client-side
// rate limiter and a circuit breaker.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fleetpulse.io/fleetpulse/internal/auth"
	apperrors "fleetpulse.io/fleetpulse/internal/pkg/errors"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

// Options configures the shared gateway client.
type Options struct {
	BaseURL         string
	Timeout         time.Duration
	RateLimit       float64 // requests per second; <=0 disables throttling
	RateBurst       int
	BreakerFailures uint32 // consecutive failures before the breaker opens
	BreakerCooldown time.Duration
}

// Client is the shared HTTP gateway. Safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	tokens  auth.TokenSource
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a gateway client for the given backend.
func NewClient(opts Options, tokens auth.TokenSource) *Client {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}

	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := opts.BreakerCooldown
	if cooldown == 0 {
		cooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "fleetpulse-backend",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("backend circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		base:    opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker,
	}
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

// Is maps common statuses onto the package sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *StatusError) Is(target error) bool {
	switch target {
	case apperrors.ErrNotFound:
		return e.Status == http.StatusNotFound
	case apperrors.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case apperrors.ErrUnavailable:
		return e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

// StatusOf extracts the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// do executes one request through the limiter and breaker, decoding the
// JSON response into out when out is non-nil. Only transport failures
// and 5xx responses count toward opening the breaker: a 404 or 422 is
// the caller's problem and says nothing about backend health.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		rtErr := c.roundTrip(ctx, method, path, body, out)
		var se *StatusError
		if errors.As(rtErr, &se) && se.Status < http.StatusInternalServerError {
			return rtErr, nil
		}
		return nil, rtErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	if err != nil {
		return err
	}
	if res != nil {
		return res.(error)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("resolve credential: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
