package quizxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

type xmlText struct {
	Value string `xml:",chardata"`
}

type xmlNamed struct {
	Text *xmlText `xml:"text"`
}

type xmlAnswer struct {
	Fraction string   `xml:"fraction,attr"`
	Text     *xmlText `xml:"text"`
	Chardata string   `xml:",chardata"`
}

type xmlTestCase struct {
	UseAsExample string    `xml:"useasexample,attr"`
	TestCode     *xmlNamed `xml:"testcode"`
	Stdin        *xmlNamed `xml:"stdin"`
	Expected     *xmlNamed `xml:"expected"`
}

type xmlQuestion struct {
	Type         string        `xml:"type,attr"`
	Name         *xmlNamed     `xml:"name"`
	QuestionText *xmlNamed     `xml:"questiontext"`
	Answers      []xmlAnswer   `xml:"answer"`
	TestCases    []xmlTestCase `xml:"testcase"`
	// Moodle exports nest test cases under <testcases>; accept both layouts.
	TestCaseBlock *struct {
		TestCases []xmlTestCase `xml:"testcase"`
	} `xml:"testcases"`
}

type xmlQuiz struct {
	XMLName   xml.Name      `xml:"quiz"`
	Questions []xmlQuestion `xml:"question"`
}

// Parse extracts questions from a quiz XML export in document order. The
// whole parse is all-or-nothing: the first malformed or unrecognized question
// aborts it with no partial results. Duplicate question names are preserved;
// the persistence layer collapses them on its natural key.
func Parse(data []byte) ([]Question, error) {
	var doc xmlQuiz
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}

	questions := make([]Question, 0, len(doc.Questions))
	for i, xq := range doc.Questions {
		q, err := parseQuestion(xq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseQuestion(xq xmlQuestion) (Question, error) {
	if xq.Type == "" {
		return Question{}, fmt.Errorf("%w: question is missing type attribute", ErrInvalidQuestion)
	}
	if !IsKnownType(xq.Type) {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, xq.Type)
	}

	// Display name is optional; body text is not.
	var name string
	if xq.Name != nil && xq.Name.Text != nil {
		name = xq.Name.Text.Value
	}
	if xq.QuestionText == nil || xq.QuestionText.Text == nil {
		return Question{}, fmt.Errorf("%w: question %q has no questiontext", ErrInvalidQuestion, name)
	}
	text := xq.QuestionText.Text.Value

	var answers []Answer
	var testCases []TestCase
	var err error

	switch {
	case IsMultichoiceType(xq.Type):
		answers, err = parseMultichoiceAnswers(xq.Answers)
		if err != nil {
			return Question{}, err
		}
	case IsCoderunnerType(xq.Type):
		answers = parseCoderunnerAnswers(xq.Answers)
		testCases = parseTestCases(xq)
	}

	return NewQuestion(name, xq.Type, text, answers, testCases)
}

func parseMultichoiceAnswers(raw []xmlAnswer) ([]Answer, error) {
	answers := make([]Answer, 0, len(raw))
	for _, xa := range raw {
		fraction := 0.0
		if xa.Fraction != "" {
			parsed, err := strconv.ParseFloat(xa.Fraction, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: answer fraction %q is not numeric", ErrInvalidQuestion, xa.Fraction)
			}
			fraction = parsed
		}
		var text string
		if xa.Text != nil {
			text = xa.Text.Value
		}
		answers = append(answers, AnswerMultichoice{Text: text, Fraction: fraction})
	}
	return answers, nil
}

func parseCoderunnerAnswers(raw []xmlAnswer) []Answer {
	answers := make([]Answer, 0, len(raw))
	for _, xa := range raw {
		text := xa.Chardata
		if xa.Text != nil {
			text = xa.Text.Value
		}
		answers = append(answers, AnswerCoderunner{Text: text})
	}
	return answers
}

func parseTestCases(xq xmlQuestion) []TestCase {
	raw := xq.TestCases
	if xq.TestCaseBlock != nil {
		raw = append(raw, xq.TestCaseBlock.TestCases...)
	}

	testCases := make([]TestCase, 0, len(raw))
	for _, xt := range raw {
		var code *string
		if xt.TestCode != nil && xt.TestCode.Text != nil {
			c := xt.TestCode.Text.Value
			code = &c
		}
		var input, expected string
		if xt.Stdin != nil && xt.Stdin.Text != nil {
			input = xt.Stdin.Text.Value
		}
		if xt.Expected != nil && xt.Expected.Text != nil {
			expected = xt.Expected.Text.Value
		}
		testCases = append(testCases, TestCase{
			Code:           code,
			Input:          input,
			ExpectedOutput: expected,
			Example:        xt.UseAsExample == "1",
		})
	}
	if len(testCases) == 0 {
		return nil
	}
	return testCases
}
