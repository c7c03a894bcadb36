package entities

import "errors"

// Domain errors
var (
	ErrInvalidMode          = errors.New("invalid evaluation mode")
	ErrMeetingTitleRequired = errors.New("meeting title is required")
	ErrTranscriptRequired   = errors.New("meeting transcript is required")
	ErrSummariesRequired    = errors.New("both summaries are required")
)
