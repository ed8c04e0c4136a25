package domain

import "errors"

var (
	// ErrQuestionNotFound is returned when an update targets an unknown record.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrTopicNotFound indicates a question references a topic the store does not have.
	ErrTopicNotFound = errors.New("topic not found")
)
