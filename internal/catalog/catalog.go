package catalog

import (
	"slices"
	"sort"
)

// Template is one fill-in-the-blank exercise. Templates are immutable once
// loaded.
type Template struct {
	Question string   `yaml:"question"`
	Token    string   `yaml:"token,omitempty"`
	Answer   string   `yaml:"answer"`
	Hint     string   `yaml:"hint,omitempty"`
	Topic    TopicKey `yaml:"-"`
}

// Blank marks the gap the learner fills in.
const Blank = "___"

// Catalog is a read-only set of templates with topic and token indices.
// It is safe for concurrent use.
type Catalog struct {
	templates []Template
	byTopic   map[TopicKey][]Template
	byToken   map[string][]Template
	safetyNet bool
}

// New builds a catalog from templates. The slice is copied.
func New(templates []Template) *Catalog {
	c := &Catalog{
		templates: slices.Clone(templates),
		byTopic:   make(map[TopicKey][]Template),
		byToken:   make(map[string][]Template),
	}
	for _, t := range c.templates {
		c.byTopic[t.Topic] = append(c.byTopic[t.Topic], t)
		if t.Token != "" {
			c.byToken[t.Token] = append(c.byToken[t.Token], t)
		}
	}
	return c
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	return slices.Clone(c.templates)
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// TemplatesByTopic returns the templates for a topic, or an empty slice for
// unknown keys.
func (c *Catalog) TemplatesByTopic(k TopicKey) []Template {
	return slices.Clone(c.byTopic[k])
}

// TemplatesByToken returns the templates testing token.
func (c *Catalog) TemplatesByToken(token string) []Template {
	return slices.Clone(c.byToken[token])
}

// Tokens returns the distinct tokens in the catalog, sorted.
func (c *Catalog) Tokens() []string {
	out := make([]string, 0, len(c.byToken))
	for tok := range c.byToken {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// TopicCounts returns the number of templates per topic.
func (c *Catalog) TopicCounts() map[TopicKey]int {
	counts := make(map[TopicKey]int, len(c.byTopic))
	for k, ts := range c.byTopic {
		counts[k] = len(ts)
	}
	return counts
}

// IsSafetyNet reports whether this catalog is the built-in fallback set.
func (c *Catalog) IsSafetyNet() bool {
	return c.safetyNet
}
