package quizxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionUnknownType(t *testing.T) {
	_, err := NewQuestion("Essay", "essay", "write about Go", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}

func TestNewQuestionClozeRejectsAnswers(t *testing.T) {
	_, err := NewQuestion("Cloze", TypeMultianswer, "pick {:MCS:=a~b}", []Answer{
		AnswerMultichoice{Text: "a", Fraction: 100},
	}, nil)
	assert.ErrorIs(t, err, ErrAnswerMismatch)
}

func TestNewQuestionTestCasesOnlyOnCoderunner(t *testing.T) {
	cases := []TestCase{{Input: "1", ExpectedOutput: "1"}}

	_, err := NewQuestion("MC", TypeMultichoice, "body", nil, cases)
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	q, err := NewQuestion("CR", TypeCoderunner, "body", nil, cases)
	require.NoError(t, err)
	assert.Len(t, q.TestCases, 1)
}

func TestNewQuestionMixedVariantsRejected(t *testing.T) {
	_, err := NewQuestion("Mixed", TypeMultichoice, "body", []Answer{
		AnswerMultichoice{Text: "a", Fraction: 100},
		AnswerCoderunner{Text: "b"},
	}, nil)
	assert.ErrorIs(t, err, ErrAnswerMismatch)
}

func TestNewQuestionCoercesUniformForeignVariant(t *testing.T) {
	// A uniform set of the wrong variant is re-projected, not rejected.
	q, err := NewQuestion("MC", TypeTrueFalse, "body", []Answer{
		AnswerCoderunner{Text: "True"},
		AnswerCoderunner{Text: "False"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, q.Answers, 2)

	first, ok := q.Answers[0].(AnswerMultichoice)
	require.True(t, ok)
	assert.Equal(t, "True", first.Text)
	assert.Equal(t, 0.0, first.Fraction)
}

func TestNewQuestionCoercesMultichoiceToCoderunner(t *testing.T) {
	q, err := NewQuestion("CR", TypeCoderunner, "body", []Answer{
		AnswerMultichoice{Text: "print(42)", Fraction: 100},
	}, nil)
	require.NoError(t, err)
	require.Len(t, q.Answers, 1)

	answer, ok := q.Answers[0].(AnswerCoderunner)
	require.True(t, ok)
	assert.Equal(t, "print(42)", answer.Text)
}

func TestIsKnownType(t *testing.T) {
	for _, known := range []string{TypeMultichoice, TypeTrueFalse, TypeCoderunner, TypeMultianswer} {
		assert.True(t, IsKnownType(known), known)
	}
	for _, unknown := range []string{"essay", "shortanswer", "matching", ""} {
		assert.False(t, IsKnownType(unknown), unknown)
	}
}
