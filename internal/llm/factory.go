package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → logging → base. events may be nil, in which
// case requests are only logged through log.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithRetry(WithLogging(base, events, log), cfg.Retry, log)
	return WithTimeout(p, cfg.Timeout), nil
}
