package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text for explanations and word lookups, optionally
// constrained to a JSON schema.
type Provider interface {
	// Generate runs a single request. With req.Schema set the provider uses
	// its native structured output and Content is validated JSON; without
	// it Content is the reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is one prompt sent to a provider.
type Request struct {
	// System sets the tutor persona and the output language.
	System string

	// Messages is the conversation so far. Explanations and word lookups
	// are single-turn, so this usually holds one user message (see Ask).
	Messages []Message

	// Schema, when set, constrains the reply to JSON of this shape. When
	// nil the reply is free text.
	Schema *Schema

	// MaxTokens caps the reply length. A reply cut off at the cap is
	// reported as ErrMaxTokensExceeded.
	MaxTokens int

	// Temperature controls randomness in [0, 1]. 0 leaves the provider
	// default.
	Temperature float64
}

// Ask builds a single-turn request.
func Ask(system, prompt string, schema *Schema) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
		Schema:   schema,
	}
}

// Message is a single turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the response must satisfy.
type Schema struct {
	// Name identifies the schema to the vendor (OpenAI response format
	// name) and keys the compiled-schema cache, so it must be unique per
	// definition. Kebab-case, e.g. "grammar-explanation".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema document as decoded JSON.
	Definition map[string]any
}

// Response is a provider's normalised output.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the reply text encoded as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request, which may be
	// a dated snapshot of ModelID.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage tracks token consumption for a single request. TotalTokens is
// InputTokens + OutputTokens when the vendor does not report it.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
