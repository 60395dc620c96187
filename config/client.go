package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ModeRemote = "remote"
	ModeLocal  = "local"
)

// ClientConfig drives the suggestctl command line client.
type ClientConfig struct {
	BaseURL      string `yaml:"base_url"`
	Mode         string `yaml:"mode"`
	SnapshotPath string `yaml:"snapshot_path"`
	Token        string `yaml:"token"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:      "http://localhost:3000",
		Mode:         ModeRemote,
		SnapshotPath: "suggestions-store.json",
	}
}

// LoadClient reads an optional YAML file at path (a missing file is fine) and
// then applies SUGGESTIONS_* environment overrides.
func LoadClient(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return ClientConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return ClientConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("SUGGESTIONS_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SUGGESTIONS_MODE")); v != "" {
		cfg.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("SUGGESTIONS_SNAPSHOT")); v != "" {
		cfg.SnapshotPath = v
	}
	if v := strings.TrimSpace(os.Getenv("SUGGESTIONS_TOKEN")); v != "" {
		cfg.Token = v
	}

	cfg.Mode = strings.ToLower(cfg.Mode)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Mode != ModeRemote && cfg.Mode != ModeLocal {
		return ClientConfig{}, fmt.Errorf("config: unsupported client mode %q", cfg.Mode)
	}
	if cfg.Mode == ModeRemote && cfg.BaseURL == "" {
		return ClientConfig{}, errors.New("config: remote mode requires base_url")
	}
	return cfg, nil
}
