// Package config manages persistent settings and the process
// environment for heroku-certs.
//
// Persistent settings live in ~/.config/heroku-certs/config.yaml and
// cover the deployment surface: the static-assets directory challenge
// files are written under, the git remote pushed to, and the branch
// required to be checked out. Command-line flags override file values.
//
// Example config.yaml:
//
//	root: public
//	remote: heroku
//	branch: main
//
// Environment values (SUDO_USER, HEROKU_API_KEY, the certbot hook
// variables) are parsed once into an Env struct and threaded into the
// components that need them; nothing else reads the environment
// ambiently.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the persistent tool configuration.
type Config struct {
	// Root is the directory containing static assets; challenge files
	// are written beneath it.
	Root string `yaml:"root"`

	// Remote is the git remote to push to for deployment.
	Remote string `yaml:"remote"`

	// Branch is the branch required to be checked out and synchronized.
	Branch string `yaml:"branch"`
}

const configDir = ".config/heroku-certs"
const configFile = "config.yaml"

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Root:   "public",
		Remote: "heroku",
		Branch: "master",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk, falling back to defaults when no
// file exists. Fields left empty in the file keep their defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Root == "" {
		cfg.Root = "public"
	}
	if cfg.Remote == "" {
		cfg.Remote = "heroku"
	}
	if cfg.Branch == "" {
		cfg.Branch = "master"
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
