package explain

import (
	"fmt"
	"strings"
)

func systemPrompt(language string) string {
	return fmt.Sprintf(`You are a friendly English teacher for a 12-year-old learner in sixth grade. Write in %s.`, language)
}

func buildExplainMessage(ex Exercise) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise: %s\n", ex.Question)
	if ex.Token != "" {
		fmt.Fprintf(&b, "Word: %s\n", ex.Token)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", ex.Answer)
	fmt.Fprintf(&b, "Hint: %s\n", ex.Hint)
	fmt.Fprintf(&b, "Topic: %s\n", ex.Topic.Label())

	b.WriteString(`
Instructions:
Explain the correct answer with a REAL memory trick, not just a list of forms.
- Bad: "swim, swam, swum" (that only repeats the forms)
- Good: "swIm, swAm, swUm: the vowels go I-A-U, like bubbles when you dive!"
- Good: "GO and WENT look nothing alike, like Clark Kent and Superman."
- Good: "ATE sounds like 8: I ATE 8 cookies!"
Write like a kind teacher talking to a 12-year-old. At most two short sentences.`)

	return b.String()
}

func buildVocabularyMessage(word string) string {
	return fmt.Sprintf(`What does %q mean?

Answer with the meaning first (one or two words), then one short example sentence.
Examples of good answers:
- "night": meaning "the time when it is dark", example "Last night I read a book."
- "went": meaning "past of go", example "I went home."`, word)
}
