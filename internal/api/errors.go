package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/gray-cloud-bridge/internal/oauth"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeInternal   = "internal_error"
)

// OAuthError is the RFC 6749 token error response body.
// The error member is the only field the linking sandbox needs.
type OAuthError struct {
	Code string `json:"error"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeOAuthError maps a grant machine error onto the RFC 6749 wire format.
//
// invalid_client is the only 401; invalid_grant and unsupported_grant_type
// are 400s. Anything else is an internal error, which should not happen on
// this path.
func writeOAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, oauth.ErrInvalidClient):
		writeJSON(w, http.StatusUnauthorized, OAuthError{Code: "invalid_client"})
	case errors.Is(err, oauth.ErrInvalidGrant):
		writeJSON(w, http.StatusBadRequest, OAuthError{Code: "invalid_grant"})
	case errors.Is(err, oauth.ErrUnsupportedGrantType):
		writeJSON(w, http.StatusBadRequest, OAuthError{Code: "unsupported_grant_type"})
	default:
		writeInternalError(w, "token exchange failed")
	}
}
