package errors

import (
	"errors"
	"fmt"
)

// Meeting errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingInvalid  = errors.New("meeting is invalid")
	ErrFixtureInvalid  = errors.New("meeting fixture is invalid")
)

// Evaluation errors
var (
	ErrInvalidMode        = errors.New("invalid evaluation mode")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrEvaluationFailed   = errors.New("evaluation model call failed")
	ErrEvaluationParse    = errors.New("evaluation response could not be parsed")
	ErrNoEvaluations      = errors.New("no evaluations stored for mode")
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrExportDisabled     = errors.New("export storage is not configured")
	ErrInvalidConcurrency = errors.New("concurrency must be between 1 and 16")
)

// StorageError marks a failed repository call. Op names the operation,
// e.g. "load meeting".
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps a repository error with the operation that produced it
func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
