package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/session"
	"github.com/abhisek/grammiz/internal/ui/theme"
)

// Commands recognised at the answer prompt.
const (
	cmdHint = "?"
	cmdQuit = ":q"
	cmdWord = ":word"
)

// Practice runs one session reading answers line by line from in and
// writing to out. It stops early on EOF or ":q"; whatever was answered by
// then is still saved. A session without answers saves nothing.
func (a *App) Practice(ctx context.Context, in io.Reader, out io.Writer, filter string, exercises int) (session.Summary, error) {
	if exercises == 0 {
		exercises = a.Config.Session.Exercises
	}
	st, err := a.Engine.Start(a.Config.UserID, filter, exercises)
	if err != nil {
		return session.Summary{}, err
	}

	renderIntro(out, intro{
		State:     st,
		Due:       a.Scheduler.DueItems(ctx, a.Config.UserID, a.now()),
		Focus:     a.Tracker.ActivePatterns(ctx, a.Config.UserID),
		Ephemeral: a.Ephemeral,
	})
	lines := bufio.NewScanner(in)

loop:
	for !st.Done() {
		if err := ctx.Err(); err != nil {
			break
		}

		var tmpl catalog.Template
		st, tmpl, err = a.Engine.Next(ctx, st)
		if err != nil {
			return session.Summary{}, err
		}
		renderExercise(out, st, tmpl)

		for st.Current != nil {
			lipgloss.Fprint(out, theme.Label.Render("> "))
			if !lines.Scan() {
				lipgloss.Fprintln(out)
				break loop
			}
			input := strings.TrimSpace(lines.Text())

			if word, ok := wordLookup(input); ok {
				a.lookUp(ctx, out, word)
				continue
			}

			switch input {
			case cmdQuit:
				break loop
			case cmdHint:
				var hint string
				st, hint, err = a.Engine.Hint(st)
				if err != nil {
					return session.Summary{}, err
				}
				if hint == "" {
					hint = "none for this one, give it your best guess!"
				}
				lipgloss.Fprintln(out, theme.Hint.Render("Hint: "+hint))
				continue
			}

			var fb session.Feedback
			st, fb, err = a.Engine.Answer(ctx, st, input)
			if errors.Is(err, session.ErrEmptyAnswer) {
				lipgloss.Fprintln(out, theme.Hint.Render(usage))
				continue
			}
			if err != nil {
				return session.Summary{}, err
			}
			renderFeedback(out, fb)
		}
	}
	if err := lines.Err(); err != nil {
		a.Log.Warn("reading answers failed", "error", err)
	}

	sum, err := a.Engine.Finish(ctx, st)
	renderSummary(out, sum)
	if err != nil {
		return sum, fmt.Errorf("session not saved: %w", err)
	}
	return sum, nil
}

// wordLookup recognises ":word <text>" and returns the text to explain.
func wordLookup(input string) (string, bool) {
	rest, ok := strings.CutPrefix(input, cmdWord)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func (a *App) lookUp(ctx context.Context, out io.Writer, word string) {
	if word == "" {
		lipgloss.Fprintln(out, theme.Hint.Render("Type the word after :word, for example :word swimming"))
		return
	}
	text, ok := a.Explainer.Vocabulary(ctx, word)
	if !ok {
		lipgloss.Fprintln(out, theme.Hint.Render("Sorry, I can't explain "+strconv.Quote(word)+" right now."))
		return
	}
	lipgloss.Fprintln(out, theme.Label.Render(word+": ")+theme.Body.Render(text))
}
