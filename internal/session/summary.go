package session

import (
	"sort"
)

// maxExamples caps each example list in the summary.
const maxExamples = 5

// Example is one answered exercise shown in the summary.
type Example struct {
	Token         string
	UserAnswer    string
	CorrectAnswer string
}

// Summary is the end-of-session report.
type Summary struct {
	SessionID  string
	Total      int
	Correct    int
	Accuracy   int // percent, rounded down
	BestStreak int
	Headline   string
	Message    string

	// Strengths and Mistakes hold up to five examples each; the More
	// counters report how many were left out.
	Strengths     []Example
	MoreStrengths int
	Mistakes      []Example
	MoreMistakes  int

	// ReviewTomorrow lists the tokens answered wrong this session.
	ReviewTomorrow []string

	Results []PracticeResult
}

// BuildSummary creates the report for a session state.
func BuildSummary(st State) Summary {
	sum := Summary{
		SessionID:  st.ID,
		Total:      len(st.Results),
		Correct:    st.Correct(),
		BestStreak: st.BestStreak,
		Results:    st.Results,
	}
	if sum.Total > 0 {
		sum.Accuracy = sum.Correct * 100 / sum.Total
	}
	sum.Headline, sum.Message = headline(sum.Accuracy)

	review := map[string]bool{}
	for _, r := range st.Results {
		token := r.EffectiveToken()
		ex := Example{Token: token, UserAnswer: r.UserAnswer, CorrectAnswer: r.CorrectAnswer}
		if r.Correct {
			if len(sum.Strengths) < maxExamples {
				sum.Strengths = append(sum.Strengths, ex)
			} else {
				sum.MoreStrengths++
			}
			continue
		}
		if len(sum.Mistakes) < maxExamples {
			sum.Mistakes = append(sum.Mistakes, ex)
		} else {
			sum.MoreMistakes++
		}
		if token != "" {
			review[token] = true
		}
	}

	for token := range review {
		sum.ReviewTomorrow = append(sum.ReviewTomorrow, token)
	}
	sort.Strings(sum.ReviewTomorrow)
	return sum
}

func headline(accuracy int) (string, string) {
	switch {
	case accuracy >= 90:
		return "Fantastic!", "You are a real English champion today."
	case accuracy >= 70:
		return "Great job!", "That was really good. Keep it up!"
	case accuracy >= 50:
		return "Well done!", "You are getting better every time. Practice makes perfect!"
	default:
		return "Don't give up!", "Every mistake is a chance to learn. Next time will be better."
	}
}
