package repository

import "errors"

// ErrUnsupportedAnswerVariant is a programming defect: an answer variant the
// store has no table for reached persistence. It is never retryable and must
// not be confused with input validation failures.
var ErrUnsupportedAnswerVariant = errors.New("unsupported answer variant received by store")
