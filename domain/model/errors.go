package model

import "errors"

// Error taxonomy shared across collaborators. Handlers map these onto HTTP
// status codes; usecases that read ambient state substitute safe defaults
// instead of propagating them.
var (
	// ErrConfiguration signals a required external credential or secret is
	// absent. Callers degrade (mock data, free plan) rather than fail.
	ErrConfiguration = errors.New("configuration missing")

	// ErrValidation signals a caller-supplied parameter is missing or
	// malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream signals a provider call failed or returned a non-success
	// status.
	ErrUpstream = errors.New("upstream request failed")

	// ErrSignature signals webhook signature verification failed; the payload
	// must be discarded without mutating state.
	ErrSignature = errors.New("signature verification failed")
)
