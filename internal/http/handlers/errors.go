// Package handlers defines the error codes carried by ErrorResponse.
//
// Codes are lowercase snake_case and stable; clients branch on them. Generic
// codes mirror HTTP semantics, the rest name a dashboard failure the status
// alone cannot express.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Dashboard specific:
	ErrCodeInvalidQuery      = "invalid_query"
	ErrCodeValidation        = "validation_failed"
	ErrCodeInvalidTransition = "invalid_transition"
	ErrCodeUnavailable       = "upstream_unavailable"
	ErrCodeTimeout           = "timeout"
	ErrCodeListFailed        = "list_failed"
	ErrCodeCreateFailed      = "create_failed"
	ErrCodeUpdateFailed      = "update_failed"
)
