package session

import (
	"errors"
	"time"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/practice"
	"github.com/abhisek/grammiz/internal/selection"
)

// Exercise count bounds for a session.
const (
	MinExercises     = 5
	MaxExercises     = 15
	DefaultExercises = 10
)

var (
	// ErrEmptyAnswer is returned by Answer for a blank submission. The
	// answer is not checked and the exercise stays open.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrNoExercise is returned by Answer and Hint when no exercise is open.
	ErrNoExercise = errors.New("no exercise in progress")

	// ErrComplete is returned by Next once every exercise has been answered.
	ErrComplete = errors.New("session complete")
)

// PracticeResult is the outcome of one answered exercise.
type PracticeResult = practice.Result

// State is the explicit state of one practice session. Engine methods take
// a State and return the updated value; the caller owns it between turns.
type State struct {
	ID     string
	UserID string

	// Filter is the learner's topic filter text, empty for mixed practice.
	Filter string

	// Exercises is the planned number of exercises.
	Exercises int

	// Turn is the 1-based number of the current exercise; 0 before the
	// first call to Next.
	Turn int

	// Current is the open exercise, nil between turns.
	Current *catalog.Template
	Stage   selection.Stage

	HintShown  bool
	Streak     int
	BestStreak int
	Results    []PracticeResult
	StartedAt  time.Time
}

// Done reports whether every planned exercise has been answered.
func (s State) Done() bool {
	return len(s.Results) >= s.Exercises
}

// Correct counts correct answers so far.
func (s State) Correct() int {
	n := 0
	for _, r := range s.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// Progress returns the current turn and the planned total, for display.
func (s State) Progress() (int, int) {
	return s.Turn, s.Exercises
}
