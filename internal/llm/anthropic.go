package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider talks to the Messages API. Structured requests use
// the native JSON output format rather than a tool call.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider accepts extra request options so tests can point
// the client at a local server.
func NewAnthropicProvider(cfg AnthropicConfig, opts ...option.RequestOption) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(base, opts...)
	client := anthropic.NewClient(opts...)
	return &AnthropicProvider{client: &client, model: resolveModel(cfg.Model, anthropicModels)}, nil
}

func (p *AnthropicProvider) ModelID() string {
	return p.model
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, p.params(req))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, mapStatus(apiErr.StatusCode, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	idx := -1
	for i, block := range msg.Content {
		if block.Type == "text" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("anthropic response has no text block (stop %q)", msg.StopReason)}
	}

	stop := StopEnd
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		stop = StopMaxTokens
	}
	usage := Usage{InputTokens: int(msg.Usage.InputTokens), OutputTokens: int(msg.Usage.OutputTokens)}
	return finish(req, msg.Content[idx].Text, usage, string(msg.Model), stop)
}

func (p *AnthropicProvider) params(req Request) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: req.Schema.Definition},
		}
	}
	return params
}
