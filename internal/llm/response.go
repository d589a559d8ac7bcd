package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// finish turns a provider's raw text output into a Response. Truncated
// output is reported as ErrMaxTokensExceeded. With a schema the text must
// be conforming JSON; without one it is wrapped as a JSON string.
func finish(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	var content json.RawMessage
	if req.Schema != nil {
		content = json.RawMessage(text)
	} else {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		content = b
	}

	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}

	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}

	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse validates raw JSON against the given Schema. It returns
// nil when schema is nil and *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// jsonschema wants a decoded JSON value, not a Go map with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
