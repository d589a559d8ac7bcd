package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/grammiz/internal/store"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(map[string]string{"explanation": "Use went."}),
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	resp, err = mock.Generate(context.Background(), Request{Schema: explanationSchema()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"explanation":"Use went."}`, string(resp.Content))

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))

	assert.Equal(t, 3, mock.CallCount())
	first := mock.Calls[0]
	assert.Equal(t, "sys", first.System)
	assert.Equal(t, "first", first.Messages[0].Content)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]int{"explanation": 3}))
	_, err := mock.Generate(context.Background(), Request{Schema: explanationSchema()})
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "explain", PurposeFrom(WithPurpose(ctx, "explain")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"unknown provider", Config{Provider: "bard"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() = %v", err)
		})
	}
}

func TestDiscover(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	cfg, ok := discover(DefaultConfig(), env(map[string]string{
		"GEMINI_API_KEY":    "g",
		"ANTHROPIC_API_KEY": "a",
	}))
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "a", cfg.Anthropic.APIKey)

	cfg, ok = discover(DefaultConfig(), env(map[string]string{"OPENROUTER_API_KEY": "o"}))
	require.True(t, ok)
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "google/gemini-2.0-flash-exp", cfg.OpenRouter.Model)

	cfg, ok = discover(DefaultConfig(), env(nil))
	assert.False(t, ok)
	assert.False(t, cfg.Enabled())
}

func TestErrorClass(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ErrRateLimit{}, ClassRateLimit},
		{fmt.Errorf("wrapped: %w", &ErrProviderUnavailable{}), ClassUnavailable},
		{&ErrInvalidResponse{Err: errors.New("bad")}, ClassInvalidResponse},
		{&ErrMaxTokensExceeded{}, ClassInvalidResponse},
		{&ErrProviderUnavailable{Err: context.DeadlineExceeded}, ClassTimeout},
		{errors.New("boom"), ClassOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorClass(tt.err), "%v", tt.err)
	}
}

func TestEstimateCost(t *testing.T) {
	usd, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 0.75, usd, 1e-9)

	usd, ok = EstimateCost("openai/gpt-4o-mini", 2_000_000, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.30, usd, 1e-9)

	_, ok = EstimateCost("mock", 10, 10)
	assert.False(t, ok)
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s := openStore(t)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"Use went."`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, s.LLMEvents(), nil)
	ctx := WithPurpose(context.Background(), "explain")

	_, err := p.Generate(ctx, Request{System: "teacher", Messages: []Message{{Role: RoleUser, Content: "why went?"}}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "again"}}})
	require.Error(t, err)

	events, err := s.LLMEvents().QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	byOutcome := map[bool]store.LLMEventRecord{}
	for _, e := range events {
		byOutcome[e.Success] = e
	}
	ok := byOutcome[true]
	assert.Equal(t, ProviderMock, ok.Provider)
	assert.Equal(t, "explain", ok.Purpose)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nteacher")
	assert.Equal(t, `"Use went."`, ok.ResponseBody)

	failed := byOutcome[false]
	assert.Contains(t, failed.ErrorMessage, "rate limited")
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(okResponse), nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.Equal(t, ClassTimeout, ErrorClass(err))
	assert.Equal(t, "slow", p.ModelID())

	assert.Equal(t, Provider(slowProvider{}), WithTimeout(slowProvider{}, 0))
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), DefaultConfig(), nil, nil)
	assert.Error(t, err)

	cfg.Provider = ProviderAnthropic
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}
