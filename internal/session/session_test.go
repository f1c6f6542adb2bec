// ABOUTME: Tests for the session store over the YAML config.
// ABOUTME: Covers token loading, unauthenticated detection, and idempotent clearing.
package session

import (
	"errors"
	"testing"

	"github.com/2389-research/homefeed/internal/config"
)

func newTestConfig(t *testing.T, token string) *config.Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &config.Config{}
	cfg.Server.APIURL = "https://feed.example.com"
	cfg.Auth.Token = token
	return cfg
}

func TestLoadWithToken(t *testing.T) {
	store := NewStore(newTestConfig(t, "tok-1"))

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("expected token 'tok-1', got %q", token)
	}
}

func TestLoadWithoutToken(t *testing.T) {
	store := NewStore(newTestConfig(t, ""))

	_, err := store.Load()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestClearRemovesCredentials(t *testing.T) {
	cfg := newTestConfig(t, "tok-1")
	cfg.Auth.Username = "bob"
	store := NewStore(cfg)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected token removed after Clear")
	}
	if store.Username() != "" {
		t.Error("expected username removed after Clear")
	}

	// Clearing persists: a fresh load of the config sees no session.
	reloaded, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	if reloaded.HasSession() {
		t.Error("expected cleared session to be persisted")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(newTestConfig(t, ""))

	// Clearing an already-empty session must succeed so it can run from any
	// error path.
	if err := store.Clear(); err != nil {
		t.Fatalf("first Clear() error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}
}

func TestSetUsername(t *testing.T) {
	store := NewStore(newTestConfig(t, "tok"))
	store.SetUsername("alice")
	if store.Username() != "alice" {
		t.Errorf("expected username 'alice', got %q", store.Username())
	}
}
