package llm

// ModelCost holds USD prices per one million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter slugs ("vendor/model") fall back to the bare model name.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	for i := len(modelID) - 1; i >= 0; i-- {
		if modelID[i] == '/' {
			if c, ok := modelCosts[modelID[i+1:]]; ok {
				return &c
			}
			break
		}
	}
	return nil
}

// EstimateCost prices a request. ok is false for unknown models.
func EstimateCost(modelID string, inputTokens, outputTokens int) (usd float64, ok bool) {
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(inputTokens, outputTokens), true
}

// Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku-20241022":  {0.8, 4},
	"claude-3-5-haiku-latest":    {0.8, 4},
	"claude-3-7-sonnet-20250219": {3, 15},
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-opus-4-5":            {5, 25},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5-mini":   {0.25, 2},

	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-exp":  {0, 0},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}
