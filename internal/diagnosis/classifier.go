package diagnosis

import (
	"fmt"
	"strings"
)

// Classifier is a rule-based error classifier.
// Returns a pattern kind, or "" if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *ClassifyInput) PatternKind
}

// DefaultClassifiers returns classifiers in priority order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&RegularizationClassifier{},
		&PerfectConfusionClassifier{},
		&TenseMixingClassifier{},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *ClassifyInput) (PatternKind, string) {
	for _, c := range classifiers {
		if kind := c.Classify(input); kind != "" {
			return kind, c.Name()
		}
	}
	return "", ""
}

// Normalize lower-cases and trims the inputs and substitutes UnknownToken
// for an empty token.
func Normalize(userAnswer, correctAnswer, token string) *ClassifyInput {
	in := &ClassifyInput{
		UserAnswer:    strings.ToLower(strings.TrimSpace(userAnswer)),
		CorrectAnswer: strings.ToLower(strings.TrimSpace(correctAnswer)),
		Token:         strings.ToLower(strings.TrimSpace(token)),
	}
	if in.Token == "" {
		in.Token = UnknownToken
	}
	return in
}

// Classify maps a wrong answer to a pattern. It is pure: the same inputs
// always produce the same kind, description and example. The result has
// Occurrences 0 and no user or date; callers fill those in.
func Classify(userAnswer, correctAnswer, token string) Pattern {
	in := Normalize(userAnswer, correctAnswer, token)

	kind, _ := RunClassifiers(DefaultClassifiers(), in)
	if kind == "" {
		kind = KindGeneralError
	}

	return Pattern{
		Kind:        kind,
		Token:       in.Token,
		Description: describe(kind, in.Token),
		Example:     fmt.Sprintf("%s instead of %s", in.UserAnswer, in.CorrectAnswer),
		Status:      StatusObserving,
	}
}

func describe(kind PatternKind, token string) string {
	switch kind {
	case KindIrregularPastRegularization:
		return fmt.Sprintf("Regular -ed ending used for %q", token)
	case KindPresentPerfectConfusion:
		return "Past simple form used in the present perfect"
	case KindTenseMixing:
		return "Base form used instead of the past simple"
	default:
		return fmt.Sprintf("Wrong form of %q", token)
	}
}
