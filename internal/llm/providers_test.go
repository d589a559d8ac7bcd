package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

func TestAnthropicProvider_StructuredOutput(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"explanation":"Go becomes went in the past."}`, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a friendly English teacher.",
		Messages:  []Message{{Role: RoleUser, Content: "Why is it went?"}},
		Schema:    explanationSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"Go becomes went in the past."}`, string(resp.Content))
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
}

func TestAnthropicProvider_MaxTokens(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"explanation":"Go bec`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		Schema:    explanationSchema(),
		MaxTokens: 5,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok), "got %T (%v)", err, err)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		class  string
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", ClassRateLimit},
		{"server error", http.StatusInternalServerError, "api_error", ClassUnavailable},
		{"bad request", http.StatusBadRequest, "invalid_request_error", ClassOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicError(tt.status, tt.kind))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			require.Error(t, err)
			assert.Equal(t, tt.class, ErrorClass(err))
		})
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
		name:   ProviderOpenAI,
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"explanation":"Swim becomes swam."}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a friendly English teacher.",
		Messages:  []Message{{Role: RoleUser, Content: "Why swam?"}},
		Schema:    explanationSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"Swim becomes swam."}`, string(resp.Content))
	assert.Equal(t, 65, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o-mini", resp.Model)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "test-explanation", got.ResponseFormat.JSONSchema.Name)
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("Swim becomes", "length"))
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var maxTok *ErrMaxTokensExceeded
	assert.True(t, errors.As(err, &maxTok))
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		class  string
	}{
		{"rate limit", http.StatusTooManyRequests, ClassRateLimit},
		{"server error", http.StatusBadGateway, ClassUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "nope", "type": "server_error"},
				})
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			require.Error(t, err)
			assert.Equal(t, tt.class, ErrorClass(err))
		})
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
	assert.Equal(t, ProviderOpenRouter, providerName(p))

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)
}

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{"type": "string"},
			"tone":        map[string]any{"type": "string", "enum": []any{"friendly", "neutral"}},
			"examples": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"explanation"},
	})

	assert.EqualValues(t, "OBJECT", schema.Type)
	require.Len(t, schema.Properties, 3)
	assert.EqualValues(t, "STRING", schema.Properties["explanation"].Type)
	assert.Len(t, schema.Properties["tone"].Enum, 2)
	assert.EqualValues(t, "ARRAY", schema.Properties["examples"].Type)
	assert.EqualValues(t, "STRING", schema.Properties["examples"].Items.Type)
	assert.Equal(t, []string{"explanation"}, schema.Required)
}

func TestBuildGeminiSchemaStringLists(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"why"},
		"properties": map[string]any{
			"why":  map[string]any{"type": "string", "description": "short reason"},
			"kind": map[string]any{"type": "mystery", "enum": []string{"a", "b"}},
		},
	})

	assert.Equal(t, []string{"why"}, schema.Required)
	assert.Equal(t, "short reason", schema.Properties["why"].Description)
	assert.EqualValues(t, "STRING", schema.Properties["kind"].Type)
	assert.Equal(t, []string{"a", "b"}, schema.Properties["kind"].Enum)
}

func TestAnthropicProvider_ConfiguredBaseURL(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"explanation":"ok"}`, "end_turn"))
	}))
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", BaseURL: server.URL}, option.WithMaxRetries(0))
	require.NoError(t, err)
	_, err = p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		Schema:    explanationSchema(),
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestGeminiProvider_ConfiguredBaseURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"explanation":"Go becomes went."}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-flash", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:    "Be brief.",
		Messages:  []Message{{Role: RoleUser, Content: "Why went?"}},
		Schema:    explanationSchema(),
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "models/gemini-2.5-flash:generateContent"), path)
	assert.JSONEq(t, `{"explanation":"Go becomes went."}`, string(resp.Content))
	assert.Equal(t, 17, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
}
