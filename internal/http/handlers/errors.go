// Package handlers defines the HTTP-layer error codes used across the JSON
// endpoints.
//
// Codes are lowercase snake_case and mostly mirror HTTP status semantics;
// clients branch on them for programmatic error handling while the `error`
// message stays human-readable.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeValidation  = "validation_failed"
	ErrCodeEmbedFailed = "embed_failed"
)
