package selection

import "strings"

// Checker compares a learner's answer with the expected one.
type Checker struct {
	// TolerateTypos accepts a single substituted character when both
	// answers have the same length. Off by default: it also accepts real
	// grammar mistakes such as "swum" for "swam".
	TolerateTypos bool

	// SqueezeSpaces treats runs of inner whitespace as a single space, so
	// "was   writing" matches "was writing".
	SqueezeSpaces bool
}

// Check reports whether user matches correct after trimming the ends and
// ignoring case. Empty inputs never match.
func (c Checker) Check(user, correct string) bool {
	u := c.normalize(user)
	k := c.normalize(correct)
	if u == "" || k == "" {
		return false
	}
	if u == k {
		return true
	}
	return c.TolerateTypos && oneSubstitution(u, k)
}

func (c Checker) normalize(s string) string {
	if c.SqueezeSpaces {
		return strings.ToLower(strings.Join(strings.Fields(s), " "))
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func oneSubstitution(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	diff := 0
	for i := range ra {
		if ra[i] != rb[i] {
			diff++
			if diff > 1 {
				return false
			}
		}
	}
	return diff == 1
}
