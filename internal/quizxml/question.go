package quizxml

import "fmt"

// Question is the transient, validated form of one parsed quiz question.
// Build it through NewQuestion; a zero-value Question carries no guarantees.
type Question struct {
	Name      string
	Type      string
	Text      string
	Answers   []Answer
	TestCases []TestCase
}

// NewQuestion validates the record and rejects it whole on the first broken
// invariant: unknown type, mixed or family-incompatible answer variants,
// answers on a cloze question, test cases outside the coderunner family.
// Answers whose variant disagrees with the declared family are coerced by
// re-projecting the shared text field into the expected variant.
func NewQuestion(name, qtype, text string, answers []Answer, testCases []TestCase) (Question, error) {
	if !IsKnownType(qtype) {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, qtype)
	}

	if len(answers) > 0 {
		if IsClozeType(qtype) {
			return Question{}, fmt.Errorf("%w: cloze question %q must not carry answers", ErrAnswerMismatch, name)
		}

		coerced, err := coerceAnswers(qtype, answers)
		if err != nil {
			return Question{}, err
		}
		answers = coerced
	}

	if len(testCases) > 0 && !IsCoderunnerType(qtype) {
		return Question{}, fmt.Errorf("%w: question %q of type %q carries test cases", ErrInvalidQuestion, name, qtype)
	}

	return Question{
		Name:      name,
		Type:      qtype,
		Text:      text,
		Answers:   answers,
		TestCases: testCases,
	}, nil
}

// coerceAnswers enforces a single concrete variant across the answer set and
// re-projects it into the variant the question family expects.
func coerceAnswers(qtype string, answers []Answer) ([]Answer, error) {
	for _, a := range answers[1:] {
		if fmt.Sprintf("%T", a) != fmt.Sprintf("%T", answers[0]) {
			return nil, fmt.Errorf("%w: mixed answer variants in one question", ErrAnswerMismatch)
		}
	}

	out := make([]Answer, 0, len(answers))
	switch {
	case IsMultichoiceType(qtype):
		for _, a := range answers {
			switch v := a.(type) {
			case AnswerMultichoice:
				out = append(out, v)
			case AnswerCoderunner:
				// Shared fields only; fraction defaults to zero.
				out = append(out, AnswerMultichoice{Text: v.Text})
			default:
				return nil, fmt.Errorf("%w: cannot coerce %T to multichoice answer", ErrAnswerMismatch, a)
			}
		}
	case IsCoderunnerType(qtype):
		for _, a := range answers {
			switch v := a.(type) {
			case AnswerCoderunner:
				out = append(out, v)
			case AnswerMultichoice:
				out = append(out, AnswerCoderunner{Text: v.Text})
			default:
				return nil, fmt.Errorf("%w: cannot coerce %T to coderunner answer", ErrAnswerMismatch, a)
			}
		}
	default:
		return nil, fmt.Errorf("%w: question type %q does not accept answers", ErrAnswerMismatch, qtype)
	}
	return out, nil
}
