package interviews

import "errors"

var (
	ErrNotFound          = errors.New("interview not found")
	ErrAlreadyStarted    = errors.New("interview already started")
	ErrNotStarted        = errors.New("interview not started")
	ErrInterviewFinished = errors.New("interview already finished")
	ErrQuestionMismatch  = errors.New("question does not belong to this interview")
	ErrInvalidInput      = errors.New("invalid input")
)
