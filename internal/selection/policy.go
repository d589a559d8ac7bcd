// Package selection decides which exercise template to present next.
package selection

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/diagnosis"
	"github.com/abhisek/grammiz/internal/spacedrep"
)

// Stage names the narrowing step that produced the final pool.
type Stage string

const (
	StageDue         Stage = "due"         // due tokens and topics
	StageFilter      Stage = "filter"      // explicit topic filter
	StageRemediation Stage = "remediation" // active error-pattern tokens
	StageDefault     Stage = "default"     // full catalog
)

// Selection is the outcome of one selection decision.
type Selection struct {
	Template catalog.Template
	Stage    Stage // last stage that restricted the pool
	PoolSize int
}

// Policy narrows the catalog in priority order and draws uniformly from the
// result:
//
//  1. even turns with due items: templates whose token or topic is due
//  2. otherwise, with a topic filter: templates of the resolved topics
//  3. every third turn without a filter: restrict the pool to problem tokens
//  4. nothing applied: the full catalog
//
// A stage whose pool comes out empty leaves the previous pool in place, so
// a draw always succeeds.
type Policy struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewPolicy creates a policy over c. A nil rng is seeded from the clock.
// A nil or empty catalog is replaced by the safety net.
func NewPolicy(c *catalog.Catalog, rng *rand.Rand) *Policy {
	if c == nil || c.Len() == 0 {
		c = catalog.MustSafetyNet()
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Policy{catalog: c, rng: rng}
}

// Catalog returns the catalog the policy draws from.
func (p *Policy) Catalog() *catalog.Catalog {
	return p.catalog
}

// SelectNext picks the template for turn (1-based).
func (p *Policy) SelectNext(turn int, due spacedrep.DueItems, active diagnosis.ActivePatterns, filter string) Selection {
	pool := p.catalog.All()
	stage := StageDefault
	filter = strings.TrimSpace(filter)

	usedDue := false
	if turn%2 == 0 && !due.Empty() {
		if cand := p.duePool(due); len(cand) > 0 {
			pool, stage, usedDue = cand, StageDue, true
		}
	}

	if !usedDue && filter != "" {
		if cand := p.filterPool(filter); len(cand) > 0 {
			pool, stage = cand, StageFilter
		}
	}

	if turn%3 == 0 && filter == "" && len(active.ProblemTokens) > 0 {
		if cand := restrictToTokens(pool, active.ProblemTokens); len(cand) > 0 {
			pool, stage = cand, StageRemediation
		}
	}

	return Selection{
		Template: pool[p.rng.IntN(len(pool))],
		Stage:    stage,
		PoolSize: len(pool),
	}
}

// duePool is the union of templates whose token or topic is due.
func (p *Policy) duePool(due spacedrep.DueItems) []catalog.Template {
	tokens := toSet(due.Tokens)
	topics := toSet(due.Topics)

	var out []catalog.Template
	for _, t := range p.catalog.All() {
		if (t.Token != "" && tokens[t.Token]) || topics[string(t.Topic)] {
			out = append(out, t)
		}
	}
	return out
}

func (p *Policy) filterPool(filter string) []catalog.Template {
	var out []catalog.Template
	for _, k := range catalog.ResolveFilter(filter) {
		out = append(out, p.catalog.TemplatesByTopic(k)...)
	}
	return out
}

func restrictToTokens(pool []catalog.Template, tokens []string) []catalog.Template {
	set := toSet(tokens)
	var out []catalog.Template
	for _, t := range pool {
		if t.Token != "" && set[t.Token] {
			out = append(out, t)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
