package explain

// MaxWordLength caps vocabulary lookups.
const MaxWordLength = 50

// Config holds explanation generation settings.
type Config struct {
	// Language is the language explanations are written in.
	Language string

	MaxTokens           int
	VocabularyMaxTokens int
	Temperature         float64
}

// DefaultConfig returns the defaults for explanation generation.
func DefaultConfig() Config {
	return Config{
		Language:            "English",
		MaxTokens:           300,
		VocabularyMaxTokens: 150,
		Temperature:         0.4,
	}
}
