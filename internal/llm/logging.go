package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/store"
)

// LoggingProvider records every request in the LLM event log and emits a
// structured log line per call.
type LoggingProvider struct {
	inner  Provider
	events store.LLMEventRepo
	log    *logger.Logger
}

// WithLogging wraps a Provider with event logging. events may be nil.
func WithLogging(p Provider, events store.LLMEventRepo, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, events: events, log: logger.OrNop(log)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.log.Debug("llm request",
		"purpose", purpose,
		"model", data.Model,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"success", data.Success,
	)

	// Event logging never fails the request.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request event", "purpose", purpose, "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func providerName(p Provider) string {
	switch v := p.(type) {
	case *AnthropicProvider:
		return ProviderAnthropic
	case *OpenAIProvider:
		return v.name
	case *GeminiProvider:
		return ProviderGemini
	case *MockProvider:
		return ProviderMock
	default:
		return p.ModelID()
	}
}

// serializeRequest renders a request in a readable form for the event log.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
