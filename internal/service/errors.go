package service

import "errors"

var (
	// ErrQuestionNotFound covers both absent and soft-deleted questions.
	ErrQuestionNotFound = errors.New("question does not exist or was deleted")
	// ErrAccessDenied means the question exists but the group's levels do not
	// cover it. Deliberately distinct from not-found.
	ErrAccessDenied      = errors.New("user group has no access to question level")
	ErrUserGroupNotFound = errors.New("user group does not exist")
	ErrLevelNotFound     = errors.New("level does not exist")
	ErrModelNotFound     = errors.New("model does not exist")
)
