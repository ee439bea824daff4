package domain

import "errors"

// Domain errors represent pipeline-level failures.
// Connector-specific errors live in the connector packages and are
// mapped onto these where callers need to react.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCredentialMissing indicates a required external credential is
	// not configured. This is the only error class that should surface
	// as a hard failure to the caller; everything else degrades.
	ErrCredentialMissing = errors.New("required credential not configured")

	// ErrGeneratorUnavailable indicates the generation service is not
	// configured. Insight stages cannot run without it.
	ErrGeneratorUnavailable = errors.New("generation service unavailable")

	// ErrIndexUnavailable indicates the semantic index is not available.
	// Augmented snippet selection is silently skipped without it.
	ErrIndexUnavailable = errors.New("semantic index unavailable")

	// ErrRateLimited indicates a provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCommentsDisabled indicates comments are turned off for a video.
	// Pagination for that video stops; the run continues.
	ErrCommentsDisabled = errors.New("comments disabled")

	// ErrQuotaExceeded indicates the provider API quota is exhausted.
	ErrQuotaExceeded = errors.New("quota exceeded")
)
