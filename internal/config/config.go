package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Supported backends.
const (
	BackendGemini = "gemini"
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

// Config holds the adapter configuration. Model names left empty are filled
// with the selected backend's defaults. Credentials are not stored here
// unless APIKey is set explicitly; the backend's environment variable is
// consulted at call time.
type Config struct {
	Backend    string `json:"backend"`
	Model      string `json:"model,omitempty"`
	ImageModel string `json:"image_model,omitempty"`
	ServerURL  string `json:"server_url,omitempty"`
	APIKey     string `json:"api_key,omitempty"`
	WorkingDir string `json:"working_dir,omitempty"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Backend: BackendGemini,
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGemini, BackendOllama, BackendOpenAI:
	case "":
		return fmt.Errorf("backend cannot be empty")
	default:
		return fmt.Errorf("unknown backend %q (use %s, %s or %s)",
			c.Backend, BackendGemini, BackendOllama, BackendOpenAI)
	}

	if c.WorkingDir != "" {
		info, err := os.Stat(c.WorkingDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("working_dir %q is not a directory", c.WorkingDir)
		}
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "uxlens", "config.json")
}
