// Package handlers provides HTTP handler implementations for the public
// surface: the server-rendered page, the JSON entries API, and the oEmbed
// proxy.
//
// This file defines the standard response utilities used across the JSON
// endpoints. Error responses always carry a stable machine-readable `code`
// and a human-readable `error` message, plus the request correlation ID when
// available.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "bad_request",
//	  "error": "enter URL in correct format"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkboard/go-linkboard-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by the JSON
// endpoints.
//
// Fields:
//   - RequestID: optional correlation ID, echoed from X-Request-ID, used to
//     correlate server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Error: a human-readable message, safe for display to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"bad_request"`
	Error     string `json:"error" example:"enter a URL"`
}

// fail aborts the request with a structured error and logs server-side
// errors (>= 500) through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Error:     msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(). External packages (e.g., router
// setup) call it to return consistent error envelopes.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
