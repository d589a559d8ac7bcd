package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFilter(t *testing.T) {
	tests := []struct {
		filter string
		want   []TopicKey
	}{
		{"", nil},
		{"   ", nil},
		{"present-perfect", []TopicKey{TopicPresentPerfect}},
		{"PAST SIMPLE", []TopicKey{TopicPastSimple}},
		{"Going-to Future", []TopicKey{TopicGoingToFuture}},
		{"Simple Past (Vergangenheit)", []TopicKey{TopicPastSimple}},
		{"Present Perfect (have/has + done)", []TopicKey{TopicPresentPerfect}},
		{"Irregular Verbs", []TopicKey{TopicPastSimple, TopicPresentPerfect}},
		{"past continuous please", []TopicKey{TopicPastProgressive}},
		{"future", []TopicKey{TopicWillFuture, TopicGoingToFuture}},
		{"Will-Future (Zukunft mit will)", []TopicKey{TopicWillFuture}},
		{"comparatives", []TopicKey{TopicComparison}},
		{"adverbs", []TopicKey{TopicAdverbs}},
		{"Vocabulary", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFilter(tt.filter))
		})
	}
}

func TestResolveFilter_ReturnsCopy(t *testing.T) {
	got := ResolveFilter("future")
	got[0] = TopicAdverbs
	assert.Equal(t, TopicWillFuture, ResolveFilter("future")[0])
}

func TestAliases_AllTopicsValid(t *testing.T) {
	for _, a := range Aliases() {
		assert.NotEmpty(t, a.Topics, a.Phrase)
		for _, k := range a.Topics {
			assert.True(t, k.Valid(), "alias %q maps to unknown topic %q", a.Phrase, k)
		}
	}
}

func TestParseTopic(t *testing.T) {
	k, ok := ParseTopic(" Signal Words ")
	assert.True(t, ok)
	assert.Equal(t, TopicSignalWords, k)

	_, ok = ParseTopic("signal")
	assert.False(t, ok)
}
