// Package services defines the business logic around link entries. This file
// centralizes service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrNormalizeURL indicates that a URL which already passed validation
	// failed to normalize at insert time. This is a defensive double-check;
	// hitting it is an internal error, not a user mistake.
	ErrNormalizeURL = errors.New("url failed normalization")
)
