package dto

import (
	"net/http"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Domain error codes are passed through to clients unchanged. The codes
// below are raised by the HTTP layer itself.
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeServiceUnavailable is used when a dependency such as the database is down
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:           http.StatusNotFound,
	shared.CodeValidation:         http.StatusBadRequest,
	shared.CodeAlreadyExists:      http.StatusBadRequest,
	shared.CodeUnauthorized:       http.StatusUnauthorized,
	shared.CodeInvalidCredentials: http.StatusUnauthorized,
	shared.CodeForbidden:          http.StatusForbidden,

	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
