// Package auth holds the process-wide credential holder for the
// upstream backend. Token acquisition and refresh happen outside this
// process; FleetPulse only reads whatever bearer token it was handed
// and attaches it to outgoing requests.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

// ErrNoToken is returned when no credential has been provided.
var ErrNoToken = errors.New("no bearer token configured")

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token() (string, error)
}

// StaticSource serves a fixed token, e.g. from configuration. The token
// can be swapped at runtime by whatever external collaborator manages
// credentials.
type StaticSource struct {
	mu     sync.Mutex
	token  string
	warned bool
}

// NewStaticSource creates a source for the given token.
func NewStaticSource(token string) *StaticSource {
	return &StaticSource{token: token}
}

// Token returns the current token. If the token is a JWT whose exp
// claim has passed, a warning is logged once; the token is still
// returned because rejection is the backend's call, not ours.
func (s *StaticSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", ErrNoToken
	}

	if exp, ok := jwtExpiry(s.token); ok && time.Now().After(exp) && !s.warned {
		s.warned = true
		logger.Warn("bearer token appears expired",
			zap.Time("expired_at", exp),
		)
	}
	return s.token, nil
}

// Set replaces the token and re-arms the expiry warning.
func (s *StaticSource) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.warned = false
	s.mu.Unlock()
}

// jwtExpiry extracts the exp claim without verifying the signature.
// Verification is the backend's job; we only want an early hint in the
// logs when every request is about to start failing with 401.
func jwtExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false // not a JWT; opaque tokens are fine
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
