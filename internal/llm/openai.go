package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider speaks the chat-completions protocol. name distinguishes
// OpenAI itself from compatible gateways such as OpenRouter.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates an OpenAI provider. cfg.BaseURL points it at
// any OpenAI-compatible endpoint.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newOpenAICompatible(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels)), nil
}

func newOpenAICompatible(name, apiKey, baseURL, model string) *OpenAIProvider {
	cc := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cc.BaseURL = baseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cc), model: model, name: name}
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s returned no choices", p.name)}
	}

	choice := resp.Choices[0]
	stop := StopEnd
	if choice.FinishReason == openai.FinishReasonLength {
		stop = StopMaxTokens
	}
	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	return finish(req, choice.Message.Content, usage, resp.Model, stop)
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	out := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema == nil {
		return out, nil
	}

	raw, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return out, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
	}
	out.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(raw),
			Strict: true,
		},
	}
	return out, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		return mapStatus(apiErr.HTTPStatusCode, err)
	case errors.As(err, &reqErr):
		return mapStatus(reqErr.HTTPStatusCode, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
