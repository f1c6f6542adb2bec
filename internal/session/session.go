// ABOUTME: Session store holding the bearer token and username for API access.
// ABOUTME: Backed by the YAML config file; Clear is idempotent and safe from any error path.
package session

import (
	"errors"
	"fmt"

	"github.com/2389-research/homefeed/internal/config"
)

// ErrUnauthenticated is returned when no bearer token is available. Callers
// must clear the session and send the user back to login; no request may be
// issued in this state.
var ErrUnauthenticated = errors.New("not logged in")

// Store supplies credentials to the API client and invalidates them on
// logout or expiry. The token is read-only for every API call; only the
// logout/expiry paths mutate it.
type Store struct {
	cfg *config.Config
}

// NewStore wraps the loaded config as the session source.
func NewStore(cfg *config.Config) *Store {
	return &Store{cfg: cfg}
}

// Load returns the persisted token, or ErrUnauthenticated if none is set.
// No network call is made.
func (s *Store) Load() (string, error) {
	if s.cfg.Auth.Token == "" {
		return "", ErrUnauthenticated
	}
	return s.cfg.Auth.Token, nil
}

// Token returns the current token, which may be empty.
func (s *Store) Token() string {
	return s.cfg.Auth.Token
}

// Username returns the persisted username, which may be empty before the
// first successful user-detail fetch.
func (s *Store) Username() string {
	return s.cfg.Auth.Username
}

// SetUsername records the username reported by the backend.
func (s *Store) SetUsername(name string) {
	s.cfg.Auth.Username = name
}

// Clear removes the token and username from memory and from disk. It is
// idempotent: clearing an already-empty session still succeeds, so it can
// be called from any failure path before redirecting to login.
func (s *Store) Clear() error {
	s.cfg.Auth.Token = ""
	s.cfg.Auth.Username = ""
	if err := s.cfg.Save(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
