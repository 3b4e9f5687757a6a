package aiquiz

import "errors"

var (
	// ErrParseError means the sanitized response was not valid JSON.
	ErrParseError = errors.New("failed to parse generated questions")
	// ErrInvalidResponseFormat means the response was JSON but not a usable question array.
	ErrInvalidResponseFormat = errors.New("invalid response format from generative service")
	// ErrUpstream wraps failures of the generative service itself.
	ErrUpstream = errors.New("generative service error")
	// ErrTransient lets providers flag a failure as safe to retry.
	ErrTransient = errors.New("transient provider failure")
)
