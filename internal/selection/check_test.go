package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkCase struct {
	user, correct string
	want          bool
}

func runChecks(t *testing.T, c Checker, tests []checkCase) {
	t.Helper()
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Check(tt.user, tt.correct), "Check(%q, %q)", tt.user, tt.correct)
	}
}

func TestChecker_Strict(t *testing.T) {
	runChecks(t, Checker{}, []checkCase{
		{"Went", "went", true},
		{" went ", "went", true},
		{"\twent\n", "went", true},
		{"goed", "went", false},
		{"", "went", false},
		{"went", "", false},
		{"   ", "went", false},
		{"WAS SWIMMING", "was swimming", true},
		{"was   writing", "was writing", false},
		{"waswriting", "was writing", false},
		{"swum", "swam", false},
		{"wnet", "went", false},
	})
}

func TestChecker_SqueezeSpaces(t *testing.T) {
	runChecks(t, Checker{SqueezeSpaces: true}, []checkCase{
		{"was   writing", "was writing", true},
		{" was \t writing ", "was writing", true},
		{"waswriting", "was writing", false},
		{"   ", "was writing", false},
	})
}

func TestChecker_TolerateTypos(t *testing.T) {
	runChecks(t, Checker{TolerateTypos: true}, []checkCase{
		{"went", "went", true},
		{"wemt", "went", true},
		{"wnet", "went", false}, // two substitutions
		{"wen", "went", false},  // length differs
		{"", "went", false},
		{"went", "", false},
		{"bougth", "bought", false},
	})
}
