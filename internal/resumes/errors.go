package resumes

import "errors"

var (
	ErrNotFound         = errors.New("resume not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserNotFound     = errors.New("user not found")
)
