// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Rendering
	Template string `json:"template,omitempty"`  // Template id; unknown ids render as classic
	Format   string `json:"format,omitempty"`    // Export format: pdf, jpg, html, txt
	PageSize string `json:"page_size,omitempty"` // A4 or Letter
	Accent   string `json:"accent,omitempty"`    // Theme accent colour override (#rrggbb)
	Font     string `json:"font,omitempty"`      // Theme font stack override

	// Paths
	OutputDir string `json:"output_dir,omitempty"` // Directory for --all-templates exports

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var (
	validFormats   = []string{"pdf", "jpg", "jpeg", "html", "htm", "txt", "text"}
	validPageSizes = []string{"a4", "letter", "us-letter"}
)

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate checks that the configuration has valid values.
// The template id is not checked: unknown ids fall back to the default layout.
func (c *Config) Validate() error {
	if c.Format != "" && !oneOf(c.Format, validFormats) {
		return fmt.Errorf("config error: unsupported 'format' %q", c.Format)
	}
	if c.PageSize != "" && !oneOf(c.PageSize, validPageSizes) {
		return fmt.Errorf("config error: unsupported 'page_size' %q", c.PageSize)
	}
	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}
	return nil
}
