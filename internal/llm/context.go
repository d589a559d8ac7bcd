package llm

import "context"

// Purposes recorded with every logged request.
const (
	PurposeExplain    = "explain"
	PurposeVocabulary = "vocabulary"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose labels the requests made with ctx, e.g. PurposeExplain.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, _ := ctx.Value(purposeKey{}).(string); v != "" {
		return v
	}
	return purposeUnknown
}
