package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use. Empty disables text
	// generation and callers use their static fallbacks.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, e.g. a proxy in front of the Messages API
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, defaults to the public Gemini API endpoint
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // default https://openrouter.ai/api/v1
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with no provider selected and the
// default models filled in.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// DiscoverConfig probes the vendors' standard API key variables in the
// order Anthropic, OpenAI, Gemini, OpenRouter and selects the first one
// set. It returns false when none is.
func DiscoverConfig() (Config, bool) {
	return discover(DefaultConfig(), os.Getenv)
}

func discover(cfg Config, getenv func(string) string) (Config, bool) {
	switch {
	case getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = getenv("ANTHROPIC_API_KEY")
	case getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	case getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = getenv("GEMINI_API_KEY")
	case getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = getenv("OPENROUTER_API_KEY")
	default:
		return cfg, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
