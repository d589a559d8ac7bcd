package config

import (
	"time"

	"github.com/abhisek/grammiz/internal/llm"
)

// Config is the application configuration, assembled by Load from
// defaults, an optional YAML file and GRAMMIZ_* environment variables.
type Config struct {
	UserID      string        `mapstructure:"user_id" validate:"required"`
	DB          string        `mapstructure:"db"`
	CatalogPath string        `mapstructure:"catalog_path"`
	Log         LogConfig     `mapstructure:"log"`
	Session     SessionConfig `mapstructure:"session"`
	Explain     ExplainConfig `mapstructure:"explain"`
	LLM         LLMConfig     `mapstructure:"llm"`
}

// LogConfig selects the zap preset and minimum level.
type LogConfig struct {
	Mode  string `mapstructure:"mode" validate:"oneof=dev prod"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// SessionConfig shapes a practice session and how answers are compared.
type SessionConfig struct {
	Exercises     int  `mapstructure:"exercises" validate:"min=5,max=15"`
	TolerateTypos bool `mapstructure:"tolerate_typos"`
	SqueezeSpaces bool `mapstructure:"squeeze_spaces"`
}

// ExplainConfig controls generated explanations. Language is the language
// the explanations are written in; exercises stay in English.
type ExplainConfig struct {
	Language string `mapstructure:"language" validate:"required"`
}

// LLMConfig selects and configures the text-generation provider. An empty
// Provider means "discover from the vendors' standard API key variables".
type LLMConfig struct {
	Provider   string         `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Timeout    time.Duration  `mapstructure:"timeout" validate:"gte=0"`
}

// ProviderConfig overrides the key, model and endpoint of one vendor. Empty
// fields keep the discovered or default value.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// Resolve builds the llm.Config for this configuration. The boolean is
// false when no provider is configured or discoverable, in which case
// text generation is disabled.
func (c LLMConfig) Resolve() (llm.Config, bool) {
	cfg := llm.DefaultConfig()
	if c.Provider == "" {
		var ok bool
		if cfg, ok = llm.DiscoverConfig(); !ok {
			return cfg, false
		}
	} else {
		cfg.Provider = c.Provider
	}

	overlay(&cfg.Anthropic.APIKey, &cfg.Anthropic.Model, &cfg.Anthropic.BaseURL, c.Anthropic)
	overlay(&cfg.OpenAI.APIKey, &cfg.OpenAI.Model, &cfg.OpenAI.BaseURL, c.OpenAI)
	overlay(&cfg.Gemini.APIKey, &cfg.Gemini.Model, &cfg.Gemini.BaseURL, c.Gemini)
	overlay(&cfg.OpenRouter.APIKey, &cfg.OpenRouter.Model, &cfg.OpenRouter.BaseURL, c.OpenRouter)
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	return cfg, true
}

// overlay copies the non-empty fields of p over the resolved values.
func overlay(key, model, baseURL *string, p ProviderConfig) {
	for _, f := range []struct {
		dst *string
		src string
	}{{key, p.APIKey}, {model, p.Model}, {baseURL, p.BaseURL}} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}
