// Package config handles configuration for the Osmiq client.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osmiq/osmiq/internal/models"
)

// Config represents the user configuration
type Config struct {
	// APIKey authenticates against the generation backend. May also be
	// supplied via the OSMIQ_API_KEY or GEMINI_API_KEY environment
	// variables, which take precedence.
	APIKey string `json:"api_key"`
	// DefaultModel is the generation model used unless overridden with
	// the --model flag.
	DefaultModel string `json:"default_model"`
	// WebSearch enables the external knowledge lookup by default; the
	// chat session can still toggle it per turn.
	WebSearch bool `json:"web_search"`
	// DisplayName is used only for the greeting in the chat header.
	DisplayName string `json:"display_name,omitempty"`
	// MarkdownStyle is the glamour style for rendered answers
	// ("dark", "light", or a path to a JSON theme).
	MarkdownStyle string `json:"markdown_style"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		DefaultModel:  models.DefaultModel,
		WebSearch:     false,
		MarkdownStyle: "dark",
	}
}

// AvailableModels lists the generation models offered in the
// configuration menu. The default model comes first.
func AvailableModels() []string {
	return []string{
		models.DefaultModel,
		"gemini-2.5-flash",
		"gemini-2.5-pro",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".osmiq"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds the API key.
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

func configPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the configuration file, falling back to defaults
// when it does not exist.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.DefaultModel == "" {
		cfg.DefaultModel = models.DefaultModel
	}
	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = "dark"
	}

	return cfg, nil
}

// SaveConfig writes the configuration file with owner-only permissions
func SaveConfig(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveAPIKey returns the API key from the environment or, failing
// that, from the configuration. Environment wins so CI and one-off
// shells don't need a config file.
func ResolveAPIKey(cfg Config) string {
	if key := os.Getenv("OSMIQ_API_KEY"); key != "" {
		return key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return cfg.APIKey
}
