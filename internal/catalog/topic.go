package catalog

import "strings"

// TopicKey identifies a grammar construct. The set is closed.
type TopicKey string

const (
	TopicPastSimple      TopicKey = "past-simple"
	TopicPastProgressive TopicKey = "past-progressive"
	TopicPresentPerfect  TopicKey = "present-perfect"
	TopicSignalWords     TopicKey = "signal-words"
	TopicWillFuture      TopicKey = "will-future"
	TopicGoingToFuture   TopicKey = "going-to-future"
	TopicComparison      TopicKey = "comparison"
	TopicAdverbs         TopicKey = "adverbs"
)

// AllTopics returns all topics in display order.
func AllTopics() []TopicKey {
	return []TopicKey{
		TopicPastSimple,
		TopicPastProgressive,
		TopicPresentPerfect,
		TopicSignalWords,
		TopicWillFuture,
		TopicGoingToFuture,
		TopicComparison,
		TopicAdverbs,
	}
}

// Label returns a human-readable name for a topic.
func (k TopicKey) Label() string {
	switch k {
	case TopicPastSimple:
		return "Past Simple"
	case TopicPastProgressive:
		return "Past Progressive"
	case TopicPresentPerfect:
		return "Present Perfect"
	case TopicSignalWords:
		return "Signal Words"
	case TopicWillFuture:
		return "Will Future"
	case TopicGoingToFuture:
		return "Going-to Future"
	case TopicComparison:
		return "Comparison"
	case TopicAdverbs:
		return "Adverbs"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of AllTopics.
func (k TopicKey) Valid() bool {
	for _, t := range AllTopics() {
		if t == k {
			return true
		}
	}
	return false
}

// ParseTopic matches s case-insensitively against topic keys and labels.
func ParseTopic(s string) (TopicKey, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllTopics() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}
