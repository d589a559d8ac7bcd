package catalog

// safetyNetTemplates is the minimal set served when no catalog can be loaded.
var safetyNetTemplates = []Template{
	{Question: "Yesterday, I ___ (go) to school.", Token: "go", Answer: "went", Hint: "go → went → gone", Topic: TopicPastSimple},
	{Question: "I have ___ (go) to Paris twice.", Token: "go", Answer: "gone", Hint: "Present Perfect: have/has + gone", Topic: TopicPresentPerfect},
	{Question: "Last night, I ___ (eat) pizza for dinner.", Token: "eat", Answer: "ate", Hint: "eat → ate → eaten", Topic: TopicPastSimple},
	{Question: "Have you ever ___ (see) a whale?", Token: "see", Answer: "seen", Hint: "Present Perfect: have/has + seen", Topic: TopicPresentPerfect},
}

// MustSafetyNet returns the built-in fallback catalog. It never fails.
func MustSafetyNet() *Catalog {
	c := New(safetyNetTemplates)
	c.safetyNet = true
	return c
}
