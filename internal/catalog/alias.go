package catalog

import "strings"

// AliasTableVersion is bumped whenever the alias table changes meaning.
const AliasTableVersion = 2

// Alias maps a free-text phrase to one or more topics.
type Alias struct {
	Phrase string
	Topics []TopicKey
}

// aliases is checked in order; the first phrase contained in the filter
// text wins, so longer and more specific phrases come first.
var aliases = []Alias{
	{"past progressive", []TopicKey{TopicPastProgressive}},
	{"past continuous", []TopicKey{TopicPastProgressive}},
	{"present perfect", []TopicKey{TopicPresentPerfect}},
	{"have/has", []TopicKey{TopicPresentPerfect}},
	{"signal word", []TopicKey{TopicSignalWords}},
	{"past simple", []TopicKey{TopicPastSimple}},
	{"simple past", []TopicKey{TopicPastSimple}},
	{"going-to", []TopicKey{TopicGoingToFuture}},
	{"going to", []TopicKey{TopicGoingToFuture}},
	{"will", []TopicKey{TopicWillFuture}},
	{"future", []TopicKey{TopicWillFuture, TopicGoingToFuture}},
	{"irregular", []TopicKey{TopicPastSimple, TopicPresentPerfect}},
	{"progressive", []TopicKey{TopicPastProgressive}},
	{"continuous", []TopicKey{TopicPastProgressive}},
	{"comparative", []TopicKey{TopicComparison}},
	{"superlative", []TopicKey{TopicComparison}},
	{"compar", []TopicKey{TopicComparison}},
	{"adverb", []TopicKey{TopicAdverbs}},
	{"past", []TopicKey{TopicPastSimple, TopicPastProgressive}},
}

// Aliases returns a copy of the alias table in match order.
func Aliases() []Alias {
	out := make([]Alias, len(aliases))
	for i, a := range aliases {
		out[i] = Alias{Phrase: a.Phrase, Topics: append([]TopicKey(nil), a.Topics...)}
	}
	return out
}

// ResolveFilter maps free-text filter input to topic keys. An exact,
// case-insensitive match on a topic key or label wins; otherwise the first
// alias phrase found inside the text decides. Returns nil when nothing
// matches.
func ResolveFilter(text string) []TopicKey {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if k, ok := ParseTopic(text); ok {
		return []TopicKey{k}
	}

	lower := strings.ToLower(text)
	for _, a := range aliases {
		if strings.Contains(lower, a.Phrase) {
			return append([]TopicKey(nil), a.Topics...)
		}
	}
	return nil
}
