package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UserConfig represents user preferences stored in ~/.craftplan/config.json.
// This file stores ONLY preferences, never credentials.
type UserConfig struct {
	// Default crafting spec file to plan against when --file is omitted
	DefaultSpecFile string `json:"default_spec_file,omitempty"`

	// Default search budget (Go duration string, e.g. "30s")
	DefaultBudget string `json:"default_budget,omitempty"`
}

// BudgetDuration parses the default budget, zero if unset or invalid
func (c *UserConfig) BudgetDuration() time.Duration {
	if c.DefaultBudget == "" {
		return 0
	}
	d, err := time.ParseDuration(c.DefaultBudget)
	if err != nil {
		return 0
	}
	return d
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a new user config handler
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".craftplan")
	configPath := filepath.Join(configDir, "config.json")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: configPath,
	}, nil
}

// GetConfigPath returns the path of the preferences file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}
