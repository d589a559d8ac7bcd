package diagnosis

import "time"

// PatternKind classifies a wrong answer.
type PatternKind string

const (
	KindIrregularPastRegularization PatternKind = "irregular-past-regularization"
	KindPresentPerfectConfusion     PatternKind = "present-perfect-confusion"
	KindTenseMixing                 PatternKind = "tense-mixing"
	KindGeneralError                PatternKind = "general-error"
)

// Label returns a human-readable name, e.g. "Tense mixing".
func (k PatternKind) Label() string {
	switch k {
	case KindIrregularPastRegularization:
		return "Irregular past forms"
	case KindPresentPerfectConfusion:
		return "Present perfect vs past simple"
	case KindTenseMixing:
		return "Tense mixing"
	case KindGeneralError:
		return "General mistakes"
	}
	return string(k)
}

// Status is the lifecycle state of a pattern.
type Status string

const (
	StatusObserving Status = "observing"
	StatusActive    Status = "active"
)

// ActiveThreshold is the occurrence count at which a pattern becomes active.
const ActiveThreshold = 3

// UnknownToken stands in for a missing token.
const UnknownToken = "unknown"

// StatusFor derives the status from an occurrence count.
func StatusFor(occurrences int) Status {
	if occurrences >= ActiveThreshold {
		return StatusActive
	}
	return StatusObserving
}

// ClassifyInput holds the normalized answer pair for classification.
type ClassifyInput struct {
	UserAnswer    string // lower-cased, trimmed
	CorrectAnswer string // lower-cased, trimmed
	Token         string // lower-cased, UnknownToken when empty
}

// Pattern is a classified recurring mistake for one token.
type Pattern struct {
	UserID      string
	Kind        PatternKind
	Token       string
	Description string
	Example     string
	Occurrences int
	Status      Status
	LastSeen    time.Time
	Version     int
}

// ActivePatterns is the deduplicated view of active patterns used by the
// selection policy. Both slices are sorted and never nil.
type ActivePatterns struct {
	PatternNames  []PatternKind
	ProblemTokens []string
}

// Empty reports whether there are no active patterns.
func (a ActivePatterns) Empty() bool {
	return len(a.PatternNames) == 0 && len(a.ProblemTokens) == 0
}
