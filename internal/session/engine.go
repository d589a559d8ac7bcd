package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/diagnosis"
	"github.com/abhisek/grammiz/internal/explain"
	"github.com/abhisek/grammiz/internal/logger"
	"github.com/abhisek/grammiz/internal/selection"
	"github.com/abhisek/grammiz/internal/spacedrep"
	"github.com/abhisek/grammiz/internal/store"
)

// Deps are the collaborators of an Engine. Explainer and Log are optional.
type Deps struct {
	Policy    *selection.Policy
	Tracker   *diagnosis.Tracker
	Scheduler *spacedrep.Scheduler
	Sessions  store.SessionRepo
	Explainer *explain.Service
	Checker   selection.Checker
	Log       *logger.Logger
}

// Engine orchestrates one practice session: it selects exercises, checks
// answers and, at the end, persists the session and feeds the batch to the
// error-pattern tracker and the review scheduler.
type Engine struct {
	policy    *selection.Policy
	tracker   *diagnosis.Tracker
	scheduler *spacedrep.Scheduler
	sessions  store.SessionRepo
	explainer *explain.Service
	checker   selection.Checker
	log       *logger.Logger
	now       func() time.Time
}

// NewEngine creates an engine from its dependencies.
func NewEngine(d Deps) *Engine {
	return &Engine{
		policy:    d.Policy,
		tracker:   d.Tracker,
		scheduler: d.Scheduler,
		sessions:  d.Sessions,
		explainer: d.Explainer,
		checker:   d.Checker,
		log:       logger.OrNop(d.Log),
		now:       time.Now,
	}
}

// WithClock overrides the engine's clock.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Start opens a session for userID. exercises must lie within
// [MinExercises, MaxExercises]; zero selects DefaultExercises.
func (e *Engine) Start(userID, filter string, exercises int) (State, error) {
	if exercises == 0 {
		exercises = DefaultExercises
	}
	if exercises < MinExercises || exercises > MaxExercises {
		return State{}, fmt.Errorf("exercises must be between %d and %d, got %d", MinExercises, MaxExercises, exercises)
	}
	return State{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filter:    strings.TrimSpace(filter),
		Exercises: exercises,
		StartedAt: e.now(),
	}, nil
}

// Next opens the next exercise. Storage failures never block selection:
// due items and active patterns degrade to empty. An exercise that is
// already open is returned unchanged.
func (e *Engine) Next(ctx context.Context, st State) (State, catalog.Template, error) {
	if st.Current != nil {
		return st, *st.Current, nil
	}
	if st.Done() {
		return st, catalog.Template{}, ErrComplete
	}

	turn := len(st.Results) + 1
	due := e.scheduler.DueItems(ctx, st.UserID, spacedrep.Day(e.now()))
	active := e.tracker.ActivePatterns(ctx, st.UserID)

	sel := e.policy.SelectNext(turn, due, active, st.Filter)
	e.log.Debug("exercise selected",
		"session", st.ID,
		"turn", turn,
		"stage", sel.Stage,
		"pool", sel.PoolSize,
		"topic", sel.Template.Topic,
		"token", sel.Template.Token,
	)

	tmpl := sel.Template
	st.Turn = turn
	st.Current = &tmpl
	st.Stage = sel.Stage
	st.HintShown = false
	return st, tmpl, nil
}

// Hint returns the hint of the open exercise and marks it shown.
func (e *Engine) Hint(st State) (State, string, error) {
	if st.Current == nil {
		return st, "", ErrNoExercise
	}
	st.HintShown = true
	return st, st.Current.Hint, nil
}

// Feedback is the engine's response to an answer.
type Feedback struct {
	Correct       bool
	CorrectAnswer string
	Streak        int

	// WhyWrong is the signal-word analysis of a wrong answer, if any rule
	// applied. Explanation is filled for wrong answers when it did not.
	WhyWrong    string
	Explanation explain.Explanation
}

// Answer checks the learner's answer to the open exercise and records the
// result. A blank answer returns ErrEmptyAnswer without touching st.
func (e *Engine) Answer(ctx context.Context, st State, answer string) (State, Feedback, error) {
	if st.Current == nil {
		return st, Feedback{}, ErrNoExercise
	}
	if strings.TrimSpace(answer) == "" {
		return st, Feedback{}, ErrEmptyAnswer
	}

	tmpl := *st.Current
	correct := e.checker.Check(answer, tmpl.Answer)

	results := make([]PracticeResult, len(st.Results), len(st.Results)+1)
	copy(results, st.Results)
	st.Results = append(results, PracticeResult{
		Topic:         tmpl.Topic,
		Token:         tmpl.Token,
		Question:      tmpl.Question,
		UserAnswer:    strings.TrimSpace(answer),
		CorrectAnswer: tmpl.Answer,
		Correct:       correct,
	})
	st.Current = nil

	if correct {
		st.Streak++
		if st.Streak > st.BestStreak {
			st.BestStreak = st.Streak
		}
	} else {
		st.Streak = 0
	}

	fb := Feedback{Correct: correct, CorrectAnswer: tmpl.Answer, Streak: st.Streak}
	if !correct {
		fb.WhyWrong = explain.WhyWrong(answer, tmpl.Answer, tmpl.Question)
		if fb.WhyWrong == "" {
			fb.Explanation = e.explain(ctx, tmpl)
		}
	}
	return st, fb, nil
}

func (e *Engine) explain(ctx context.Context, tmpl catalog.Template) explain.Explanation {
	ex := explain.FromTemplate(tmpl)
	if e.explainer == nil {
		return explain.Fallback(ex)
	}
	return e.explainer.Explain(ctx, ex)
}

type sessionDetails struct {
	Filter    string           `json:"filter,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	Exercises []PracticeResult `json:"exercises"`
}

// Finish ends the session. It appends the session record, then updates
// error patterns and the review schedule from the batch. The summary is
// always returned; a non-nil error means the session record could not be
// written, while pattern and schedule updates are best effort and only
// logged.
func (e *Engine) Finish(ctx context.Context, st State) (Summary, error) {
	sum := BuildSummary(st)
	if len(st.Results) == 0 {
		return sum, nil
	}

	now := e.now()
	var appendErr error
	details, err := json.Marshal(sessionDetails{Filter: st.Filter, StartedAt: st.StartedAt, Exercises: st.Results})
	if err != nil {
		appendErr = fmt.Errorf("encode session details: %w", err)
	} else {
		appendErr = e.sessions.AppendSession(ctx, store.SessionRecord{
			ID:         st.ID,
			UserID:     st.UserID,
			Date:       spacedrep.Day(now),
			Total:      sum.Total,
			Correct:    sum.Correct,
			BestStreak: sum.BestStreak,
			Details:    string(details),
			CreatedAt:  now,
		})
		if appendErr != nil {
			appendErr = fmt.Errorf("save session: %w", appendErr)
		}
	}
	if appendErr != nil {
		e.log.Warn("session record not saved", "session", st.ID, "error", appendErr)
	}

	e.tracker.RecordBatch(ctx, st.UserID, st.Results)
	e.scheduler.ApplyBatch(ctx, st.UserID, st.Results, spacedrep.Day(now))

	return sum, appendErr
}
