// ABOUTME: Tests for homefeed configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, session detection, and save/load roundtrip.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	// Point the config path at an empty directory
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.APIURL != "" {
		t.Error("expected empty api_url in default config")
	}
	if cfg.Auth.Token != "" {
		t.Error("expected empty token in default config")
	}
	if cfg.HasSession() {
		t.Error("expected HasSession() to be false for default config")
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "homefeed")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	yamlContent := `server:
  api_url: https://feed.example.com
auth:
  token: opaque-token-123
  username: bob
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yamlContent), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.APIURL != "https://feed.example.com" {
		t.Errorf("expected api_url, got %q", cfg.Server.APIURL)
	}
	if cfg.Auth.Token != "opaque-token-123" {
		t.Errorf("expected token, got %q", cfg.Auth.Token)
	}
	if cfg.Auth.Username != "bob" {
		t.Errorf("expected username bob, got %q", cfg.Auth.Username)
	}
	if !cfg.HasSession() {
		t.Error("expected HasSession() to be true")
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	cfg.Server.APIURL = "https://feed.example.com"
	cfg.Auth.Token = "tok"
	cfg.Auth.Username = "alice"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions on token file, got %v", info.Mode().Perm())
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reloaded.Auth.Token != "tok" {
		t.Errorf("expected token to roundtrip, got %q", reloaded.Auth.Token)
	}
	if reloaded.Server.APIURL != "https://feed.example.com" {
		t.Errorf("expected api_url to roundtrip, got %q", reloaded.Server.APIURL)
	}
}
