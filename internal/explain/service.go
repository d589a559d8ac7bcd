package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/grammiz/internal/llm"
	"github.com/abhisek/grammiz/internal/logger"
)

// Service produces explanations through an LLM provider and falls back to
// static content whenever generation is unavailable or fails.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// NewService creates an explanation service. provider may be nil, in
// which case every call takes the fallback path.
func NewService(provider llm.Provider, cfg Config, log *logger.Logger) *Service {
	if cfg.Language == "" {
		cfg.Language = DefaultConfig().Language
	}
	return &Service{provider: provider, cfg: cfg, log: logger.OrNop(log)}
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
}

// Explain returns a short explanation of the exercise's correct answer.
// It never fails: provider errors and unusable output yield Fallback.
func (s *Service) Explain(ctx context.Context, ex Exercise) Explanation {
	if s.provider == nil {
		return Fallback(ex)
	}

	text, err := s.generate(ctx, ex)
	if err != nil {
		s.log.Warn("explanation generation failed, using fallback",
			"answer", ex.Answer,
			"class", llm.ErrorClass(err),
			"error", err,
		)
		return Fallback(ex)
	}
	return Explanation{Text: text, Source: SourceGenerated}
}

func (s *Service) generate(ctx context.Context, ex Exercise) (string, error) {
	req := llm.Ask(systemPrompt(s.cfg.Language), buildExplainMessage(ex), ExplanationSchema)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExplain), req)
	if err != nil {
		return "", fmt.Errorf("explanation generation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse explanation: %w", err)}
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("empty explanation")}
	}
	return text, nil
}

type vocabularyOutput struct {
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// Vocabulary explains a single word. The input is trimmed and capped at
// MaxWordLength characters. ok is false for empty input or when no
// explanation could be produced.
func (s *Service) Vocabulary(ctx context.Context, word string) (string, bool) {
	word = truncate(strings.TrimSpace(word), MaxWordLength)
	if word == "" || s.provider == nil {
		return "", false
	}

	req := llm.Ask(systemPrompt(s.cfg.Language), buildVocabularyMessage(word), VocabularySchema)
	req.MaxTokens = s.cfg.VocabularyMaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeVocabulary), req)
	if err != nil {
		s.log.Warn("vocabulary lookup failed", "word", word, "class", llm.ErrorClass(err), "error", err)
		return "", false
	}

	var out vocabularyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Meaning) == "" {
		s.log.Warn("vocabulary lookup returned unusable output", "word", word, "class", llm.ClassInvalidResponse)
		return "", false
	}
	text := strings.TrimRight(strings.TrimSpace(out.Meaning), ".")
	if ex := strings.TrimSpace(out.Example); ex != "" {
		text += ". " + ex
	}
	return text, true
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
