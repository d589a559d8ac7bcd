package explain

import (
	"fmt"
	"strings"
)

// tricks are hand-written memory aids keyed by the lower-cased correct
// answer.
var tricks = map[string]string{
	"went":    "GO turns into WENT, like Clark Kent turns into Superman: same person, totally different look. Just remember it as a special case!",
	"gone":    "GONE rhymes with \"on and on\": the dragon has GONE away. After have/has it is always GONE, never went.",
	"swam":    "swIm, swAm, swUm: the vowels go I-A-U, like bubbles when you dive. SWAM is for yesterday.",
	"swum":    "swIm, swAm, swUm: I-A-U! After have/has use SWUM: \"I have swum.\"",
	"ate":     "ATE sounds like 8 (eight)! \"I ATE 8 cookies.\" ATE is for yesterday.",
	"eaten":   "After have/has comes EATEN, with -en at the end: \"I have eaten.\"",
	"ran":     "RUN becomes RAN: when you run you run out of breath, \"Raaan!\" The U turns into an A.",
	"run":     "Surprise! After have/has RUN stays the same: \"I have run.\" No new word needed.",
	"took":    "TAKE becomes TOOK: the two O's look like big eyes. You take something and go \"Oooh!\"",
	"taken":   "After have/has comes TAKEN: \"I have taken.\" Remember the -EN ending.",
	"wrote":   "WRITE becomes WROTE: the I turns into an O, like an ink blot on the page.",
	"written": "After have/has comes WRITTEN, with a double T: \"I have written.\"",
	"saw":     "SEE becomes SAW, and a saw is also a tool: \"I SAW a saw!\"",
	"seen":    "After have/has the double E stays: SEEN. \"I have seen it.\"",
	"came":    "COME becomes CAME: only the O turns into an A. Easy!",
	"come":    "Surprise! After have/has COME stays the same: \"I have come.\"",
	"did":     "DO becomes DID: short and simple, DID works for everyone in the past.",
	"done":    "After have/has comes DONE: \"I have done it.\" DONE means finished!",
	"made":    "MAKE becomes MADE: the K drops out. It sounds almost the same.",
	"bought":  "BUY becomes BOUGHT, and it rhymes with BROUGHT and THOUGHT: \"I thought I bought it.\"",
	"found":   "FIND becomes FOUND: the I turns into OU, like \"Ou! I found a treasure!\"",
	"got":     "GET becomes GOT: the E turns into an O. Short and easy.",
	"gave":    "GIVE becomes GAVE: the I turns into an A. \"I gave you a gift.\"",
	"given":   "After have/has comes GIVEN: GIVE + N. \"I have given.\"",
	"knew":    "KNOW becomes KNEW: the silent K stays, and KNEW rhymes with NEW.",
	"known":   "After have/has comes KNOWN. The silent K always stays!",
}

// Fallback returns the hand-written trick for the exercise's answer, or a
// generic reminder built from its hint. Without a hint the reminder names
// the answer itself.
func Fallback(ex Exercise) Explanation {
	answer := strings.TrimSpace(ex.Answer)
	if t, ok := tricks[strings.ToLower(answer)]; ok {
		return Explanation{Text: t, Source: SourceTrick}
	}
	if hint := strings.TrimSpace(ex.Hint); hint != "" {
		return Explanation{Text: "Remember: " + hint, Source: SourceHint}
	}
	return Explanation{Text: fmt.Sprintf("The right answer here is %q. Try saying the whole sentence with it once.", answer), Source: SourceHint}
}
