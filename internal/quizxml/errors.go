package quizxml

import "errors"

var (
	// ErrInvalidXML means the document is not well-formed XML.
	ErrInvalidXML = errors.New("invalid XML structure")
	// ErrInvalidQuestion covers structurally broken questions: missing type
	// attribute, missing question text, test cases on a non-coderunner type.
	ErrInvalidQuestion = errors.New("invalid question contents")
	// ErrUnknownQuestionType means the type attribute is outside the known set.
	ErrUnknownQuestionType = errors.New("unrecognized question type")
	// ErrAnswerMismatch means attached answers do not fit the declared type
	// family and could not be coerced.
	ErrAnswerMismatch = errors.New("answer type does not match question type")
)
