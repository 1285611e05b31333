package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("Defaults Come From The Embedded Template", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8000" {
			t.Errorf("unexpected base URL: %s", config.API.BaseURL)
		}
		if config.API.RateLimit <= 0 {
			t.Errorf("expected a positive rate limit, got %f", config.API.RateLimit)
		}
		if config.Upload.TimeoutSeconds <= config.API.TimeoutSeconds {
			t.Error("expected the upload timeout to exceed the API timeout")
		}
		if config.Auth.TokenPath == "" || config.Database.Path == "" {
			t.Error("expected default paths")
		}
	})

	t.Run("LoadConfig Parses TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
base_url = "https://backend.example.com"
timeout_seconds = 15
rate_limit = 2.5

[auth]
client_id = "cid"
client_secret = "secret"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.API.BaseURL != "https://backend.example.com" {
			t.Errorf("unexpected base URL: %s", config.API.BaseURL)
		}
		if config.API.RateLimit != 2.5 {
			t.Errorf("unexpected rate limit: %f", config.API.RateLimit)
		}
		if config.Auth.ClientID != "cid" {
			t.Errorf("unexpected client id: %s", config.Auth.ClientID)
		}
	})

	t.Run("LoadConfig Fails On Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Fails On Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		os.WriteFile(path, []byte("[api\nbroken"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("CreateConfigFile Writes The Template Once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config should parse: %v", err)
		}
		if config.API.BaseURL == "" {
			t.Error("expected populated template")
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when the file already exists")
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Tilde Prefix", "~/.tubeflow/token.json", filepath.Join(home, ".tubeflow/token.json")},
		{"Bare Tilde", "~", home},
		{"Absolute Path Untouched", "/var/data/db.sqlite", "/var/data/db.sqlite"},
		{"Relative Path Untouched", "config.toml", "config.toml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExpandPath(tc.input); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	t.Run("IDs Are Unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	})
}
