package app

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/grammiz/internal/catalog"
	"github.com/abhisek/grammiz/internal/config"
	"github.com/abhisek/grammiz/internal/llm"
	"github.com/abhisek/grammiz/internal/spacedrep"
	"github.com/abhisek/grammiz/internal/store"
)

var now = time.Date(2026, 5, 4, 16, 0, 0, 0, time.UTC)

const oneTemplate = `past-simple:
  - {question: "Yesterday, I ___ (go) to school.", token: go, answer: went, hint: "go → went → gone"}
`

// noProviderKeys keeps provider discovery from picking up real API keys.
func noProviderKeys(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func newTestApp(t *testing.T, catalogYAML string, provider llm.Provider) *App {
	t.Helper()
	noProviderKeys(t)
	cfg := &config.Config{
		UserID:  "kid",
		Session: config.SessionConfig{Exercises: 5},
		Explain: config.ExplainConfig{Language: "English"},
	}
	if catalogYAML != "" {
		cfg.CatalogPath = filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(catalogYAML), 0o600))
	}

	a, err := New(context.Background(), cfg, Options{
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Provider: provider,
		Rand:     rand.New(rand.NewPCG(3, 5)),
		Now:      func() time.Time { return now },
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew_CatalogFallbacks(t *testing.T) {
	a := newTestApp(t, "", nil)
	assert.False(t, a.Catalog.IsSafetyNet())
	assert.Greater(t, a.Catalog.Len(), 50)

	broken := newTestApp(t, "past-simple: [", nil)
	assert.True(t, broken.Catalog.IsSafetyNet())
}

func TestPractice_FullSession(t *testing.T) {
	a := newTestApp(t, oneTemplate, nil)
	in := strings.NewReader("went\n?\n\ngoed\nwent\n went \nWENT\n")
	var out bytes.Buffer

	sum, err := a.Practice(context.Background(), in, &out, "", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Total)
	assert.Equal(t, 4, sum.Correct)
	assert.Equal(t, "Great job!", sum.Headline)
	assert.Equal(t, []string{"go"}, sum.ReviewTomorrow)

	text := out.String()
	assert.Contains(t, text, "Grammar practice: 5 exercises")
	assert.Contains(t, text, "Topics: all topics")
	assert.Contains(t, text, "Yesterday, I ___ (go) to school.")
	assert.Contains(t, text, "Hint: go → went → gone")
	assert.Contains(t, text, "Type your answer")
	assert.Contains(t, text, "Not quite. The answer is: went")
	assert.Contains(t, text, "irregular verb")
	assert.Contains(t, text, "Correct! 3 in a row.")
	assert.Contains(t, text, "Score:       4/5 (80%)")
	assert.Contains(t, text, "Review tomorrow: go")

	recs, err := a.Store.Sessions().QuerySessions(context.Background(), "kid", store.QueryOpts{}).Get()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 3, recs[0].BestStreak)

	due := a.Scheduler.DueItems(context.Background(), "kid", spacedrep.Day(now).AddDate(0, 0, 1))
	assert.Equal(t, []string{"go"}, due.Tokens)
}

func TestPractice_StopsEarly(t *testing.T) {
	a := newTestApp(t, oneTemplate, nil)
	var out bytes.Buffer

	sum, err := a.Practice(context.Background(), strings.NewReader("went\n:q\n"), &out, "past", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
	assert.Contains(t, out.String(), "Topics: "+catalog.TopicPastSimple.Label())

	// EOF before any answer saves nothing.
	sum, err = a.Practice(context.Background(), strings.NewReader(""), &out, "", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total)

	recs, err := a.Store.Sessions().QuerySessions(context.Background(), "kid", store.QueryOpts{}).Get()
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestPractice_InvalidExerciseCount(t *testing.T) {
	a := newTestApp(t, oneTemplate, nil)
	_, err := a.Practice(context.Background(), strings.NewReader(""), &bytes.Buffer{}, "", 20)
	assert.Error(t, err)
}

func TestPractice_GeneratedExplanation(t *testing.T) {
	const adverb = `adverbs:
  - {question: "The turtle walks ___ (slow).", token: slow, answer: slowly, hint: "Adjective + ly"}
`
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"explanation": "Use the adverb to describe how."}))
	a := newTestApp(t, adverb, mock)
	var out bytes.Buffer

	_, err := a.Practice(context.Background(), strings.NewReader("quick\nslowly\nslowly\nslowly\nslowly\n"), &out, "", 5)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Use the adverb to describe how.")
	assert.Equal(t, 1, mock.CallCount())
}

func TestNew_UnreachableDatabaseStillServesExercises(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"sqlite in missing directory", filepath.Join(t.TempDir(), "missing", "grammiz.db")},
		{"postgres refusing connections", "postgres://nobody:x@127.0.0.1:1/none?connect_timeout=1&sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noProviderKeys(t)
			cfg := &config.Config{
				UserID:      "kid",
				CatalogPath: filepath.Join(t.TempDir(), "catalog.yaml"),
				Session:     config.SessionConfig{Exercises: 5},
				Explain:     config.ExplainConfig{Language: "English"},
			}
			require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(oneTemplate), 0o600))

			a, err := New(context.Background(), cfg, Options{DBPath: tt.dsn, Now: func() time.Time { return now }}, nil)
			require.NoError(t, err)
			t.Cleanup(func() { a.Close() })
			assert.True(t, a.Ephemeral)

			var out bytes.Buffer
			sum, err := a.Practice(context.Background(), strings.NewReader("went\ngoed\n:q\n"), &out, "", 0)
			require.NoError(t, err)
			assert.Equal(t, 2, sum.Total)
			assert.Equal(t, 1, sum.Correct)

			text := out.String()
			assert.Contains(t, text, "Progress can't be saved this time.")
			assert.Contains(t, text, "Yesterday, I ___ (go) to school.")
			assert.Contains(t, text, "Not quite. The answer is: went")
		})
	}
}

func TestPractice_IntroShowsDueItemsAndFocus(t *testing.T) {
	a := newTestApp(t, oneTemplate, nil)
	assert.False(t, a.Ephemeral)

	_, err := a.Practice(context.Background(), strings.NewReader("goed\ngoed\ngoed\nwent\nwent\n"), &bytes.Buffer{}, "", 5)
	require.NoError(t, err)

	var first bytes.Buffer
	_, err = a.Practice(context.Background(), strings.NewReader(""), &first, "", 5)
	require.NoError(t, err)
	assert.NotContains(t, first.String(), "Due for review today")
	assert.Contains(t, first.String(), "Your focus today:")

	a.now = func() time.Time { return now.AddDate(0, 0, 1) }
	var out bytes.Buffer
	_, err = a.Practice(context.Background(), strings.NewReader(""), &out, "", 5)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Due for review today: go, "+catalog.TopicPastSimple.Label())
	assert.Contains(t, text, "  - Irregular past forms")
	assert.Contains(t, text, "Especially: go")
	assert.NotContains(t, text, "Progress can't be saved")
}

func TestPractice_WordLookup(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{
		"meaning": "moving through water",
		"example": "She is swimming in the lake.",
	}))
	a := newTestApp(t, oneTemplate, mock)
	var out bytes.Buffer

	sum, err := a.Practice(context.Background(), strings.NewReader(":word swimming\n:word\nwent\n:q\n"), &out, "", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, mock.CallCount())

	text := out.String()
	assert.Contains(t, text, "swimming: moving through water. She is swimming in the lake.")
	assert.Contains(t, text, "Type the word after :word")
}

func TestPractice_WordLookupWithoutProvider(t *testing.T) {
	a := newTestApp(t, oneTemplate, nil)
	var out bytes.Buffer

	_, err := a.Practice(context.Background(), strings.NewReader(":word  lake \n:q\n"), &out, "", 5)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Sorry, I can't explain "lake" right now.`)
}

func TestWordLookup(t *testing.T) {
	tests := []struct {
		input string
		word  string
		ok    bool
	}{
		{":word swimming", "swimming", true},
		{":word   ice cream ", "ice cream", true},
		{":word", "", true},
		{":wordy", "", false},
		{"went", "", false},
	}
	for _, tt := range tests {
		word, ok := wordLookup(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.word, word, tt.input)
	}
}

func TestPractice_TemplateWithoutHint(t *testing.T) {
	const noHint = `adverbs:
  - {question: "She sings ___ (beautiful).", token: beautiful, answer: beautifully}
`
	a := newTestApp(t, noHint, nil)
	var out bytes.Buffer

	_, err := a.Practice(context.Background(), strings.NewReader("?\nnicely\n:q\n"), &out, "", 5)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Hint: none for this one")
	assert.Contains(t, text, `The right answer here is "beautifully".`)
	assert.NotContains(t, text, "Remember: \n")
}
