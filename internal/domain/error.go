package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrAlreadyProcessed  = errors.New("suggestion already processed")
	ErrNoApprovedPhrases = errors.New("no approved phrases")
	ErrInvalidArgument   = errors.New("invalid argument")
)
