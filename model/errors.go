package model

import (
	"fmt"
	"time"
)

// MethodNotAllowedError - the request verb is not supported
type MethodNotAllowedError struct {
	Verb string `json:"verb"`
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method not allowed: %s", e.Verb)
}

// AccessDeniedError - the caller may not perform the operation
type AccessDeniedError struct{}

func (e *AccessDeniedError) Error() string {
	return "access denied"
}

// InvalidRequestError - malformed input
type InvalidRequestError struct {
	Message string `json:"message"`
}

func (e *InvalidRequestError) Error() string {
	return e.Message
}

// InformationNotFoundError - the target record does not exist
type InformationNotFoundError struct{}

func (e *InformationNotFoundError) Error() string {
	return "information not found"
}

// RuntimeError wraps a collaborator failure with the elapsed time of the
// failing request for diagnostics
type RuntimeError struct {
	Cause   error
	Elapsed time.Duration
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("request failed after %s: %v", e.Elapsed, e.Cause)
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}
