package diagnosis

import "strings"

const regularSuffix = "ed"

// RegularizationClassifier flags a regular -ed ending where the expected
// form is irregular ("swimmed" for "swam").
type RegularizationClassifier struct{}

func (c *RegularizationClassifier) Name() string { return "regularization" }

func (c *RegularizationClassifier) Classify(in *ClassifyInput) PatternKind {
	if strings.HasSuffix(in.UserAnswer, regularSuffix) && !strings.HasSuffix(in.CorrectAnswer, regularSuffix) {
		return KindIrregularPastRegularization
	}
	return ""
}

// PerfectConfusionClassifier flags the past simple of "go" used where the
// participle belongs ("went" for "gone").
type PerfectConfusionClassifier struct{}

func (c *PerfectConfusionClassifier) Name() string { return "perfect-confusion" }

func (c *PerfectConfusionClassifier) Classify(in *ClassifyInput) PatternKind {
	if strings.Contains(in.UserAnswer, "went") && strings.Contains(in.CorrectAnswer, "gone") {
		return KindPresentPerfectConfusion
	}
	return ""
}

// TenseMixingClassifier flags the bare token given where a regular past
// form was expected ("play" for "played").
type TenseMixingClassifier struct{}

func (c *TenseMixingClassifier) Name() string { return "tense-mixing" }

func (c *TenseMixingClassifier) Classify(in *ClassifyInput) PatternKind {
	if strings.HasSuffix(in.CorrectAnswer, regularSuffix) &&
		!strings.HasSuffix(in.UserAnswer, regularSuffix) &&
		in.UserAnswer == in.Token {
		return KindTenseMixing
	}
	return ""
}
