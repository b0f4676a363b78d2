// Package llm provides the language-model client used by the résumé assistant.
package llm

import (
	"os"
	"strconv"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for conversational replies streamed to the editor
	TierLite ModelTier = "lite"
	// TierStandard is for structured suggestions returned as JSON
	TierStandard ModelTier = "standard"
	// TierAdvanced is for whole-résumé rewrites
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// SystemInstruction is sent with every request when set.
	SystemInstruction string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.4,
	}
}

// LoadConfig returns DefaultConfig with overrides from LLM_MODEL_LITE,
// LLM_MODEL_STANDARD, LLM_MODEL_ADVANCED and LLM_TEMPERATURE.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	for tier, env := range map[ModelTier]string{
		TierLite:     "LLM_MODEL_LITE",
		TierStandard: "LLM_MODEL_STANDARD",
		TierAdvanced: "LLM_MODEL_ADVANCED",
	} {
		if v := os.Getenv(env); v != "" {
			cfg.Models[tier] = v
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
