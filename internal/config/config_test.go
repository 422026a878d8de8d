package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Root != "public" {
		t.Errorf("expected root 'public', got %q", cfg.Root)
	}
	if cfg.Remote != "heroku" {
		t.Errorf("expected remote 'heroku', got %q", cfg.Remote)
	}
	if cfg.Branch != "master" {
		t.Errorf("expected branch 'master', got %q", cfg.Branch)
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := loadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Remote != "heroku" {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "root: static\nremote: production\nbranch: main\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != "static" || cfg.Remote != "production" || cfg.Branch != "main" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("empty fields keep defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("branch: main\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != "public" || cfg.Remote != "heroku" {
			t.Errorf("defaults not preserved: %+v", cfg)
		}
		if cfg.Branch != "main" {
			t.Errorf("expected branch 'main', got %q", cfg.Branch)
		}
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("root: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadFrom(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SUDO_USER", "deploy")
	t.Setenv("HEROKU_API_KEY", "secret-token")
	t.Setenv("CERTBOT_DOMAIN", "example.com")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.SudoUser != "deploy" {
		t.Errorf("expected SudoUser 'deploy', got %q", e.SudoUser)
	}
	if e.HerokuAPIKey != "secret-token" {
		t.Errorf("expected API key parsed, got %q", e.HerokuAPIKey)
	}
	if e.CertbotDomain != "example.com" {
		t.Errorf("expected certbot domain parsed, got %q", e.CertbotDomain)
	}
}
