package quizxml

// Answer is the sealed answer variant union. Persistence and validation
// dispatch on the concrete type; the marker method keeps the set closed so
// every switch can treat an unknown variant as a programming defect.
type Answer interface {
	answerVariant()
	AnswerText() string
}

// AnswerMultichoice carries the raw scoring fraction of one option. The
// is-correct flag is not part of the ingest model; the read side derives it
// from the fractions of the whole answer set.
type AnswerMultichoice struct {
	Text     string
	Fraction float64
}

func (AnswerMultichoice) answerVariant() {}

func (a AnswerMultichoice) AnswerText() string { return a.Text }

// AnswerCoderunner is a reference answer for a code-execution question.
type AnswerCoderunner struct {
	Text string
}

func (AnswerCoderunner) answerVariant() {}

func (a AnswerCoderunner) AnswerText() string { return a.Text }

// TestCase is one coderunner check: optional reference snippet, stdin and the
// expected stdout. Example test cases are shown to the end user.
type TestCase struct {
	Code           *string
	Input          string
	ExpectedOutput string
	Example        bool
}
