package explain

import "github.com/abhisek/grammiz/internal/llm"

// ExplanationSchema is the structured output for exercise explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "grammar-explanation",
	Description: "A short, child-friendly explanation with a memory trick",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "At most two short sentences containing one real memory trick",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

// VocabularySchema is the structured output for word lookups.
var VocabularySchema = &llm.Schema{
	Name:        "vocabulary-help",
	Description: "Meaning of an English word with one example",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{
				"type":        "string",
				"description": "One or two words giving the meaning",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "One short example sentence using the word",
			},
		},
		"required":             []any{"meaning", "example"},
		"additionalProperties": false,
	},
}
