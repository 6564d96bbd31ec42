package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotAuthenticated: no user identity at submit time. Nothing was written.
	ErrNotAuthenticated = errors.New("you must be logged in to submit a solution")
	// ErrSubmissionInFlight: the key already has a submission running.
	ErrSubmissionInFlight = errors.New("a submission for this question is already in progress")
	// ErrAlreadySubmitted: the key is submitted; Reset before submitting a new solution.
	ErrAlreadySubmitted = errors.New("this question is already submitted; reset it to submit a new solution")
	// ErrNoCompletion: the key has no cached record to attach a review to.
	ErrNoCompletion = errors.New("no completion found for this question")
	// ErrReviewUnavailable: no reviewer is configured.
	ErrReviewUnavailable = errors.New("code review is not configured")
)

// ValidationError carries one message per offending field. Nothing was written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RemoteWriteError wraps a failed write to the submission sink. The local
// cache was not touched and the user may resubmit.
type RemoteWriteError struct {
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("saving submission failed: %v", e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}
