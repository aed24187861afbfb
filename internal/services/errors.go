// Package services defines the business logic behind the dashboard: record
// queries, support case workflow, inbox messaging, payout methods and maker
// profiles. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
//
// Payout method validation is deliberately not an error: it is reported as a
// Result with Success=false so the caller can display the message as-is.
package services

import (
	"errors"

	"github.com/tbourn/go-marketplace-backend/internal/sim"
)

// Lookup errors. Handlers render these as an empty state (404).
var (
	// ErrCaseNotFound indicates that the requested support case does not exist.
	ErrCaseNotFound = errors.New("case not found")

	// ErrConversationNotFound indicates that the requested conversation does
	// not exist.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrTransactionNotFound indicates that no royalty or payout transaction
	// has the requested id.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Input and workflow errors.
var (
	// ErrInvalidTransition is returned when a status change is not an edge of
	// the support case workflow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyContent is returned when a message body is blank.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when a message body exceeds the configured limit.
	ErrTooLong = errors.New("content too long")

	// ErrInvalidCase is returned when a new case is missing a title or carries
	// an unknown type or priority.
	ErrInvalidCase = errors.New("invalid case")

	// ErrInvalidProfile is returned when a profile fails schema validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidQuery wraps unknown filter fields, sort keys and ordinal
	// values coming from a list request.
	ErrInvalidQuery = errors.New("invalid query")
)

// ErrSimulatedFailure is re-exported so handlers need not import sim.
var ErrSimulatedFailure = sim.ErrSimulatedFailure
