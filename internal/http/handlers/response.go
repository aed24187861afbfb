// Package handlers provides the HTTP handlers of the dashboard API.
//
// This file holds the response helpers shared by every endpoint. Failures
// always use the ErrorResponse envelope with a stable code; 5xx failures are
// logged through the request-scoped logger. Handlers that receive an error
// from a service call failErr, which maps service sentinels to a status and
// code in one place.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "case not found"
//	}
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/services"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"not_found"`
	// Human-readable message
	Message string `json:"message" example:"case not found"`
}

func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail writes the error envelope. The router uses it for 404/405 fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps a service error onto the envelope. Unrecognized errors become
// a 500 carrying fallbackCode.
func failErr(c *gin.Context, err error, fallbackCode string) {
	status, code := classify(err)
	if code == "" {
		status, code = http.StatusInternalServerError, fallbackCode
	}
	msg := err.Error()
	if status >= http.StatusInternalServerError && code != ErrCodeUnavailable && code != ErrCodeTimeout {
		// Internal details stay in the log.
		middleware.LoggerFrom(c).Error().Err(err).Msg("handler error")
		msg = "internal server error"
	}
	fail(c, status, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrCaseNotFound),
		errors.Is(err, services.ErrConversationNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, services.ErrInvalidQuery):
		return http.StatusBadRequest, ErrCodeInvalidQuery
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrTooLong),
		errors.Is(err, services.ErrInvalidCase),
		errors.Is(err, services.ErrInvalidProfile):
		return http.StatusUnprocessableEntity, ErrCodeValidation
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict, ErrCodeInvalidTransition
	case errors.Is(err, services.ErrSimulatedFailure):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	case errors.Is(err, query.ErrUnknownOrdinal):
		// A record holds a value outside its enum: a data defect, not a bad request.
		return http.StatusInternalServerError, ErrCodeInternal
	}
	return 0, ""
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
