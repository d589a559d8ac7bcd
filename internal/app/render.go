package app

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/diagnosis"
	"github.com/abhisek/grammiz/internal/explain"
	"github.com/abhisek/grammiz/internal/session"
	"github.com/abhisek/grammiz/internal/spacedrep"
	"github.com/abhisek/grammiz/internal/ui/theme"
)

const barWidth = 20

const usage = "Type your answer, ? for a hint, :word <word> to look up a word or :q to stop."

// intro is what the learner sees before the first exercise.
type intro struct {
	State     session.State
	Due       spacedrep.DueItems
	Focus     diagnosis.ActivePatterns
	Ephemeral bool
}

func renderIntro(w io.Writer, in intro) {
	st := in.State
	scope := "all topics"
	if topics := catalog.ResolveFilter(st.Filter); len(topics) > 0 {
		labels := make([]string, len(topics))
		for i, t := range topics {
			labels[i] = t.Label()
		}
		scope = strings.Join(labels, ", ")
	}
	lipgloss.Fprintln(w, theme.Title.Render(fmt.Sprintf("Grammar practice: %d exercises", st.Exercises)))
	lipgloss.Fprintln(w, theme.Subtitle.Render("Topics: "+scope))
	if in.Ephemeral {
		lipgloss.Fprintln(w, theme.Incorrect.Render("Progress can't be saved this time."))
	}

	if due := dueLabels(in.Due); len(due) > 0 {
		lipgloss.Fprintln(w, theme.Highlight.Render("Due for review today: ")+theme.Body.Render(strings.Join(due, ", ")))
	}
	if !in.Focus.Empty() {
		lipgloss.Fprintln(w, theme.Label.Render("Your focus today:"))
		for _, k := range in.Focus.PatternNames {
			lipgloss.Fprintln(w, theme.Body.Render("  - "+k.Label()))
		}
		if len(in.Focus.ProblemTokens) > 0 {
			lipgloss.Fprintln(w, theme.Subtitle.Render("  Especially: "+strings.Join(in.Focus.ProblemTokens, ", ")))
		}
	}
	lipgloss.Fprintln(w, theme.Hint.Render(usage))
}

// dueLabels lists due tokens followed by due topics by label.
func dueLabels(d spacedrep.DueItems) []string {
	out := append([]string(nil), d.Tokens...)
	for _, t := range d.Topics {
		out = append(out, catalog.TopicKey(t).Label())
	}
	return out
}

func renderExercise(w io.Writer, st session.State, t catalog.Template) {
	turn, total := st.Progress()
	lipgloss.Fprintln(w)
	lipgloss.Fprintf(w, "%s %s  %s\n",
		theme.Bar(float64(turn-1)/float64(total), barWidth),
		theme.Subtitle.Render(fmt.Sprintf("%d/%d", turn, total)),
		theme.Label.Render(t.Topic.Label()))
	lipgloss.Fprintln(w, theme.Body.Render(t.Question))
}

func renderFeedback(w io.Writer, fb session.Feedback) {
	if fb.Correct {
		msg := "Correct!"
		if fb.Streak > 1 {
			msg = fmt.Sprintf("Correct! %d in a row.", fb.Streak)
		}
		lipgloss.Fprintln(w, theme.Correct.Render(msg))
		return
	}

	lipgloss.Fprintln(w, theme.Incorrect.Render("Not quite. The answer is: ")+theme.Highlight.Render(fb.CorrectAnswer))
	switch {
	case fb.WhyWrong != "":
		lipgloss.Fprintln(w, theme.Body.Render(fb.WhyWrong))
	case fb.Explanation.Text != "":
		text := fb.Explanation.Text
		if fb.Explanation.Source == explain.SourceTrick {
			text = "Memory trick: " + text
		}
		lipgloss.Fprintln(w, theme.Body.Render(text))
	}
}

func renderSummary(w io.Writer, sum session.Summary) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", theme.Title.Render(sum.Headline), sum.Message)
	fmt.Fprintf(&b, "Score:       %d/%d (%d%%)\n", sum.Correct, sum.Total, sum.Accuracy)
	fmt.Fprintf(&b, "Best streak: %d", sum.BestStreak)

	if len(sum.Strengths) > 0 {
		b.WriteString("\n\n" + theme.Correct.Render("Got right"))
		for _, ex := range sum.Strengths {
			fmt.Fprintf(&b, "\n  %s", ex.CorrectAnswer)
		}
		writeMore(&b, sum.MoreStrengths)
	}
	if len(sum.Mistakes) > 0 {
		b.WriteString("\n\n" + theme.Incorrect.Render("To practise"))
		for _, ex := range sum.Mistakes {
			fmt.Fprintf(&b, "\n  %s → %s", ex.UserAnswer, ex.CorrectAnswer)
		}
		writeMore(&b, sum.MoreMistakes)
	}
	if len(sum.ReviewTomorrow) > 0 {
		fmt.Fprintf(&b, "\n\nReview tomorrow: %s", strings.Join(sum.ReviewTomorrow, ", "))
	}

	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, theme.Card.Render(b.String()))
}

func writeMore(b *strings.Builder, n int) {
	if n > 0 {
		fmt.Fprintf(b, "\n  %s", theme.Hint.Render(fmt.Sprintf("... and %d more", n)))
	}
}
