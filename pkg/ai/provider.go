package ai

import (
	"fmt"
	"strings"
)

// Provider selects which model API the assistant talks to.
type Provider string

const (
	Gemini   Provider = "gemini"
	OpenAI   Provider = "openai"
	DeepSeek Provider = "deepseek"
	Custom   Provider = "custom"
)

// AllProviders returns the supported providers in display order.
func AllProviders() []Provider {
	return []Provider{Gemini, OpenAI, DeepSeek, Custom}
}

// ParseProvider validates a provider name.
func ParseProvider(raw string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllProviders() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("ai: unknown provider %q", raw)
}

// Defaults returns the base URL and model a provider starts with.
func Defaults(p Provider) (baseURL, modelID string) {
	switch p {
	case Gemini:
		return "", "gemini-3-flash-preview"
	case OpenAI:
		return "https://api.openai.com/v1", "gpt-4o"
	case DeepSeek:
		return "https://api.deepseek.com/v1", "deepseek-chat"
	case Custom:
		return "", ""
	}
	return "", ""
}

// Config is the persisted assistant configuration.
type Config struct {
	Provider Provider `json:"provider"`
	BaseURL  string   `json:"baseUrl"`
	APIKey   string   `json:"apiKey"`
	ModelID  string   `json:"modelId"`
}

// DefaultConfig is Gemini with no explicit key.
func DefaultConfig() Config {
	return ForProvider(Gemini)
}

// ForProvider switches to p and resets the URL and model to its defaults,
// keeping nothing else.
func ForProvider(p Provider) Config {
	base, model := Defaults(p)
	return Config{Provider: p, BaseURL: base, ModelID: model}
}

// HasKey reports whether the assistant can make calls: Gemini with a key in
// the environment, or any provider with an explicit key.
func HasKey(cfg Config, envKey string) bool {
	if cfg.APIKey != "" {
		return true
	}
	return cfg.Provider == Gemini && envKey != "" && envKey != "undefined"
}

// Redacted returns cfg with the key masked for display.
func (c Config) Redacted() Config {
	if n := len(c.APIKey); n > 0 {
		if n <= 4 {
			c.APIKey = strings.Repeat("*", n)
		} else {
			c.APIKey = strings.Repeat("*", n-4) + c.APIKey[n-4:]
		}
	}
	return c
}
