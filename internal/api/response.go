package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/infiniv/luqum/pkg/luqum"
)

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but don't try to write another response
			return
		}
	}
}

// RespondError sends an error response
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, luqum.ErrorResponse{
		Error: luqum.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// RespondErrorWithDetails sends an error response with details
func RespondErrorWithDetails(w http.ResponseWriter, status int, code, message, query string, details []luqum.ErrorInfo) {
	RespondJSON(w, status, luqum.ErrorResponse{
		Error: luqum.ErrorDetail{
			Code:    code,
			Message: message,
			Query:   query,
			Details: details,
		},
	})
}

// RespondInternalError sends a 500 internal server error
func RespondInternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "An internal error occurred"
	}
	RespondError(w, http.StatusInternalServerError, luqum.ErrorCodeInternalError, message)
}

// RespondBadRequest sends a 400 bad request error
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, luqum.ErrorCodeParseError, message)
}

// RespondNotFound sends a 404 not found error
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, luqum.ErrorCodeSchemaNotFound, message)
}

// RespondRateLimited sends a 429 rate limited error
func RespondRateLimited(w http.ResponseWriter, retryAfter int) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	RespondError(w, http.StatusTooManyRequests, luqum.ErrorCodeRateLimited, "Rate limit exceeded")
}

// RespondTooManyRequests sends a 429 too many requests error with retry after header
func RespondTooManyRequests(w http.ResponseWriter, message string, retryAfter int) {
	if message == "" {
		message = "Too many requests"
	}
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	RespondError(w, http.StatusTooManyRequests, luqum.ErrorCodeRateLimited, message)
}

// RespondServiceUnavailable sends a 503 service unavailable error
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Service unavailable"
	}
	RespondError(w, http.StatusServiceUnavailable, luqum.ErrorCodeServiceUnavailable, message)
}

// RespondTimeout sends a 504 gateway timeout error
func RespondTimeout(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Request timeout"
	}
	RespondError(w, http.StatusGatewayTimeout, luqum.ErrorCodeTimeout, message)
}
