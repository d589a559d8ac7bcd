package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// GeminiProvider implements Provider on the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider on the Gemini API backend. Friendly
// names such as "gemini-flash" resolve to current model IDs.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, geminiConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}

	var usage Usage
	if md := result.UsageMetadata; md != nil {
		usage.InputTokens = int(md.PromptTokenCount)
		usage.OutputTokens = int(md.CandidatesTokenCount)
		usage.TotalTokens = int(md.TotalTokenCount)
	}
	return finish(req, result.Text(), usage, p.model, mapGeminiStopReason(result))
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxTokens)}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}
	return cfg
}

// buildGeminiSchema converts the subset of JSON Schema Gemini understands.
// Keywords it lacks, such as additionalProperties, are dropped; the response
// is still validated against the full schema afterwards.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := def["type"].(string); ok {
		if gt, known := geminiTypes[t]; known {
			s.Type = gt
		}
	}
	s.Description, _ = def["description"].(string)
	s.Required = stringList(def["required"])
	s.Enum = stringList(def["enum"])

	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = buildGeminiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		s.Items = buildGeminiSchema(items)
	}
	return s
}

// stringList accepts both []string and the []any that decoded JSON yields.
func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		var out []string
		for _, x := range vs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return StopMaxTokens
	}
	return StopEnd
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return mapStatus(apiErr.Code, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
