package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/propcheck/inspections/pkg/httpx"
)

// Machine-readable error codes shared between the service and its clients.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUserLockedOut      = "user_locked_out"
	ErrorCodeTwoFactorRequired  = "two_factor_required"
	ErrorCodeInvalid2FACode     = "invalid_2fa_code"
	ErrorCode2FADeliveryFailed  = "2fa_delivery_failed"
	ErrorCodeInvalidSession     = "invalid_session"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error envelope every handler writes. It implements the
// error interface so the SDK client can surface it directly.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned for malformed or unvalidatable bodies.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials covers unknown email and wrong password with
	// one identical message, so the response never reveals which half of
	// the pair was wrong.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrUserLockedOut deliberately omits the remaining lockout time.
	ErrUserLockedOut = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeUserLockedOut,
		Description: "account temporarily locked, please try again later",
	}

	// ErrTwoFactorRequired tells the UI to transition to its code-entry
	// step; it is a challenge, not a hard failure.
	ErrTwoFactorRequired = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeTwoFactorRequired,
		Description: "a two-factor code is required to complete this login",
	}

	// ErrInvalid2FACode covers wrong and expired codes alike.
	ErrInvalid2FACode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalid2FACode,
		Description: "the two-factor code is invalid or has expired",
	}

	// Err2FADeliveryFailed lets the user retry sending rather than retry
	// entering a code that was never received.
	Err2FADeliveryFailed = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCode2FADeliveryFailed,
		Description: "could not deliver the two-factor code, please try again",
	}

	// ErrInvalidSession is returned when the session cookie is missing,
	// malformed or expired.
	ErrInvalidSession = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidSession,
		Description: "the session is missing or no longer valid",
	}

	// ErrServerError is the opaque envelope for infrastructure failures;
	// the real cause goes to the server-side logs only.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "failed to authenticate",
	}
)
