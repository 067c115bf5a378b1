package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const configFileName = "config.json"

// Config holds the ambient preferences; zero values mean defaults.
type Config struct {
	Theme string `json:"theme,omitempty"` // classic | neon | mono
	Store string `json:"store,omitempty"` // path to the list file
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".lineup"), nil
}

func configFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads ~/.lineup/config.json and applies LINEUP_THEME / LINEUP_STORE
// env overrides on top. A missing file is not an error.
func Load() (Config, error) {
	p, err := configFilePath()
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadFrom(p)
	if err != nil {
		return Config{}, err
	}
	return cfg.withEnv(), nil
}

// LoadFrom reads a config file without env overrides; used by Load and tests.
func LoadFrom(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) withEnv() Config {
	if v := strings.TrimSpace(os.Getenv("LINEUP_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("LINEUP_STORE")); v != "" {
		c.Store = v
	}
	return c
}

// Save writes ~/.lineup/config.json, creating the directory with 0700.
func Save(cfg Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p, _ := configFilePath()
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
