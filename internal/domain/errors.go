package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrStale marks a response that arrived after a newer request for the same
	// slot was issued; callers discard it instead of applying it.
	ErrStale = errors.New("stale response superseded")

	// ErrRequestInFlight rejects a user action while an earlier one for the same
	// control is still outstanding (duplicate-submission guard).
	ErrRequestInFlight = errors.New("request already in flight")

	// ErrInvalidTransition is a programming error: a workflow operation was
	// invoked from a step it is not defined for.
	ErrInvalidTransition = errors.New("invalid workflow transition")

	// ErrSignInRequired gates protected sections; the wrapping error carries the
	// originally requested destination.
	ErrSignInRequired = errors.New("sign in required")
)
