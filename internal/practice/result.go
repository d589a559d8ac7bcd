// Package practice holds the per-answer record shared by the session engine,
// the error pattern tracker and the review scheduler.
package practice

import (
	"regexp"
	"strings"

	"github.com/abhisek/grammiz/internal/catalog"
)

// Result is the outcome of one answered exercise. It lives only for the
// duration of a session and is consumed at batch end.
type Result struct {
	Topic         catalog.TopicKey `json:"topic"`
	Token         string           `json:"token,omitempty"`
	Question      string           `json:"question"`
	UserAnswer    string           `json:"user_answer"`
	CorrectAnswer string           `json:"correct_answer"`
	Correct       bool             `json:"correct"`
}

var tokenInQuestion = regexp.MustCompile(`\(([A-Za-z][A-Za-z' -]*)\)`)

// EffectiveToken returns the result's token, falling back to the word in
// parentheses in the question, e.g. "(swim)". Returns "" when neither is
// present.
func (r Result) EffectiveToken() string {
	if tok := strings.TrimSpace(r.Token); tok != "" {
		return strings.ToLower(tok)
	}
	return TokenFromQuestion(r.Question)
}

// TokenFromQuestion extracts the parenthesized word from a question.
func TokenFromQuestion(question string) string {
	m := tokenInQuestion.FindStringSubmatch(question)
	if m == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(m[1]))
}
