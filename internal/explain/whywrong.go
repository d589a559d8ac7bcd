package explain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/grammiz/internal/practice"
)

var pastSimpleMarkers = []string{
	"yesterday", "last week", "last month", "last year", "ago",
	"last monday", "last tuesday", "last wednesday", "last thursday",
	"last friday", "last saturday", "last sunday",
	"in 2023", "in 2022", "when i was",
}

var presentPerfectMarkers = []string{
	"already", "just", "ever", "never", "yet", "so far", "since",
	"for three", "for two", "recently", "lately",
}

var (
	auxiliaryPattern = regexp.MustCompile(`\b(has|have)\b`)
	markerPatterns   = compileMarkers(append(pastSimpleMarkers, presentPerfectMarkers...))
)

func compileMarkers(markers []string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(markers))
	for _, w := range markers {
		m[w] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return m
}

// firstMarker returns the first marker found as whole words in text.
func firstMarker(text string, markers []string) (string, bool) {
	for _, w := range markers {
		if markerPatterns[w].MatchString(text) {
			return w, true
		}
	}
	return "", false
}

// WhyWrong explains why userAnswer is wrong for question, based on the
// signal words in the question and the shape of the answer. It returns ""
// when no rule applies.
func WhyWrong(userAnswer, correctAnswer, question string) string {
	user := strings.ToLower(strings.TrimSpace(userAnswer))
	correct := strings.ToLower(strings.TrimSpace(correctAnswer))
	q := strings.ToLower(question)
	if user == "" || correct == "" || user == correct {
		return ""
	}
	verb := strings.ToLower(practice.TokenFromQuestion(question))
	userPerfect := auxiliaryPattern.MatchString(user)

	if marker, ok := firstMarker(q, pastSimpleMarkers); ok && userPerfect {
		return fmt.Sprintf(`Why %q is wrong here:
You used the present perfect (has/have + participle), but the sentence says %q, a fixed time in the past.
Rule: past simple (took, went, ate) goes with a fixed time like yesterday, last week or two days ago. Present perfect (has taken, has gone) has no fixed time.
With %q you always need the past simple.`, user, marker, marker)
	}

	if strings.HasSuffix(user, "ed") && !strings.HasSuffix(correct, "ed") {
		name := verb
		if name == "" {
			name = "this verb"
		}
		return fmt.Sprintf(`Why %q is wrong here:
You added the regular -ed ending, but %q is an irregular verb.
Irregular verbs do not take -ed. They have their own forms that you learn by heart.
Right: %s
Wrong: %s`, user, name, correct, user)
	}

	if verb != "" && user == verb && correct != verb {
		return fmt.Sprintf(`Why %q is wrong here:
You wrote the base form, but the sentence needs a different form.
Look at the time words in the sentence: they tell you which tense to use.
Right: %s
Base form: %s`, user, correct, user)
	}

	needsPerfect := auxiliaryPattern.MatchString(correct) || auxiliaryPattern.MatchString(q)
	if marker, ok := firstMarker(q, presentPerfectMarkers); ok && needsPerfect && !userPerfect {
		return fmt.Sprintf(`Why %q is wrong here:
You used the past simple, but %q is a signal word for the present perfect.
Rule: present perfect (has/have + third form) goes with already, just, ever, never, yet, since and for. Past simple goes with yesterday, last week and ago.
With %q you need the third form: %s.`, user, marker, marker, correct)
	}

	return ""
}
