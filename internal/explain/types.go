package explain

import "github.com/abhisek/grammiz/internal/catalog"

// Exercise is the fully specified exercise an explanation is asked for.
type Exercise struct {
	Question string
	Token    string
	Answer   string
	Hint     string
	Topic    catalog.TopicKey
}

// FromTemplate builds an Exercise from a catalog template.
func FromTemplate(t catalog.Template) Exercise {
	return Exercise{
		Question: t.Question,
		Token:    t.Token,
		Answer:   t.Answer,
		Hint:     t.Hint,
		Topic:    t.Topic,
	}
}

// Source says where an explanation came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceTrick     Source = "trick"
	SourceHint      Source = "hint"
)

// Explanation is a short pedagogical text shown after a wrong answer.
type Explanation struct {
	Text   string
	Source Source
}
