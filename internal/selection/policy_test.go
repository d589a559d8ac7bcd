package selection

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/diagnosis"
	"github.com/abhisek/grammiz/internal/spacedrep"
)

const draws = 200

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// goCatalog has 3 templates for "go" and 20 others.
func goCatalog() *catalog.Catalog {
	var ts []catalog.Template
	for i := 0; i < 3; i++ {
		ts = append(ts, catalog.Template{Question: fmt.Sprintf("go %d ___", i), Token: "go", Answer: "went", Topic: catalog.TopicPastSimple})
	}
	for i := 0; i < 20; i++ {
		topic := catalog.TopicComparison
		if i%2 == 0 {
			topic = catalog.TopicAdverbs
		}
		ts = append(ts, catalog.Template{Question: fmt.Sprintf("other %d ___", i), Token: fmt.Sprintf("w%d", i), Answer: "x", Topic: topic})
	}
	return catalog.New(ts)
}

func noDue() spacedrep.DueItems { return spacedrep.DueItems{Tokens: []string{}, Topics: []string{}} }

func noPatterns() diagnosis.ActivePatterns {
	return diagnosis.ActivePatterns{PatternNames: []diagnosis.PatternKind{}, ProblemTokens: []string{}}
}

func TestSelectNext_DueTokenOnEvenTurn(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"go"}}

	for i := 0; i < draws; i++ {
		sel := p.SelectNext(2, due, noPatterns(), "")
		require.Equal(t, "go", sel.Template.Token)
		assert.Equal(t, StageDue, sel.Stage)
		assert.Equal(t, 3, sel.PoolSize)
	}
}

func TestSelectNext_DueIgnoredOnOddTurn(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	sel := p.SelectNext(1, spacedrep.DueItems{Tokens: []string{"go"}}, noPatterns(), "")
	assert.Equal(t, StageDefault, sel.Stage)
	assert.Equal(t, 23, sel.PoolSize)
}

func TestSelectNext_DueUnionOfTokensAndTopics(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"go"}, Topics: []string{string(catalog.TopicComparison)}}

	sel := p.SelectNext(4, due, noPatterns(), "")
	assert.Equal(t, StageDue, sel.Stage)
	assert.Equal(t, 13, sel.PoolSize) // 3 go + 10 comparison
}

func TestSelectNext_DueOutranksFilter(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	sel := p.SelectNext(2, spacedrep.DueItems{Tokens: []string{"go"}}, noPatterns(), "adverbs")
	assert.Equal(t, StageDue, sel.Stage)
	assert.Equal(t, "go", sel.Template.Token)
}

func TestSelectNext_EmptyDuePoolFallsThroughToFilter(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"nothing-matches"}}

	for i := 0; i < draws; i++ {
		sel := p.SelectNext(2, due, noPatterns(), "adverbs")
		require.Equal(t, catalog.TopicAdverbs, sel.Template.Topic)
		assert.Equal(t, StageFilter, sel.Stage)
	}
}

func TestSelectNext_Filter(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	for i := 0; i < draws; i++ {
		sel := p.SelectNext(1, noDue(), noPatterns(), "Comparison")
		require.Equal(t, catalog.TopicComparison, sel.Template.Topic)
	}
}

func TestSelectNext_UnresolvedFilterUsesFullCatalog(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	sel := p.SelectNext(1, noDue(), noPatterns(), "Vocabulary")
	assert.Equal(t, StageDefault, sel.Stage)
	assert.Equal(t, 23, sel.PoolSize)
}

func TestSelectNext_FilterWithNoTemplatesUsesFullCatalog(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	sel := p.SelectNext(1, noDue(), noPatterns(), "will future")
	assert.Equal(t, StageDefault, sel.Stage)
	assert.Equal(t, 23, sel.PoolSize)
}

func TestSelectNext_RemediationEveryThirdTurn(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	active := diagnosis.ActivePatterns{ProblemTokens: []string{"go"}}

	for i := 0; i < draws; i++ {
		sel := p.SelectNext(3, noDue(), active, "")
		require.Equal(t, "go", sel.Template.Token)
		assert.Equal(t, StageRemediation, sel.Stage)
	}

	sel := p.SelectNext(5, noDue(), active, "")
	assert.Equal(t, StageDefault, sel.Stage)
}

func TestSelectNext_RemediationSkippedWithFilter(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	active := diagnosis.ActivePatterns{ProblemTokens: []string{"go"}}

	sel := p.SelectNext(3, noDue(), active, "adverbs")
	assert.Equal(t, StageFilter, sel.Stage)
	assert.Equal(t, catalog.TopicAdverbs, sel.Template.Topic)
}

func TestSelectNext_RemediationStacksOnDue(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"go", "w1"}}
	active := diagnosis.ActivePatterns{ProblemTokens: []string{"w1"}}

	for i := 0; i < draws; i++ {
		sel := p.SelectNext(6, due, active, "")
		require.Equal(t, "w1", sel.Template.Token)
		assert.Equal(t, StageRemediation, sel.Stage)
		assert.Equal(t, 1, sel.PoolSize)
	}
}

func TestSelectNext_RemediationEmptyKeepsPool(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"go"}}
	active := diagnosis.ActivePatterns{ProblemTokens: []string{"w5"}}

	sel := p.SelectNext(6, due, active, "")
	assert.Equal(t, StageDue, sel.Stage)
	assert.Equal(t, "go", sel.Template.Token)
}

func TestSelectNext_AlwaysReturnsTemplate(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	dues := []spacedrep.DueItems{noDue(), {Tokens: []string{"zzz"}}, {Topics: []string{"zzz"}}}
	actives := []diagnosis.ActivePatterns{noPatterns(), {ProblemTokens: []string{"zzz"}}}
	filters := []string{"", "zzz", "adverbs", "future"}

	for turn := 1; turn <= 12; turn++ {
		for _, d := range dues {
			for _, a := range actives {
				for _, f := range filters {
					sel := p.SelectNext(turn, d, a, f)
					require.NotEmpty(t, sel.Template.Question, "turn=%d due=%v active=%v filter=%q", turn, d, a, f)
					require.Positive(t, sel.PoolSize)
				}
			}
		}
	}
}

func TestNewPolicy_EmptyCatalogUsesSafetyNet(t *testing.T) {
	p := NewPolicy(catalog.New(nil), nil)
	require.True(t, p.Catalog().IsSafetyNet())
	sel := p.SelectNext(1, noDue(), noPatterns(), "")
	assert.NotEmpty(t, sel.Template.Answer)
}

func TestSelectNext_UniformWithinPool(t *testing.T) {
	p := NewPolicy(goCatalog(), testRNG())
	due := spacedrep.DueItems{Tokens: []string{"go"}}
	counts := make(map[string]int)
	for i := 0; i < 3000; i++ {
		counts[p.SelectNext(2, due, noPatterns(), "").Template.Question]++
	}
	require.Len(t, counts, 3)
	for q, n := range counts {
		assert.InDelta(t, 1000, n, 150, q)
	}
}
