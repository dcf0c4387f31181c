package authkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is the canonical error for a failed service call.
//
// It carries:
//   - Status: the HTTP status the service answered with;
//   - Code: a machine-usable marker, e.g. "invalid_token", "banned";
//   - Message: human-oriented description (what went wrong);
//   - Details: arbitrary key/value payload from the service response.
type APIError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authkit: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("authkit: status %d: %s", e.Status, e.Message)
}

// decodeAPIError turns a non-2xx response into an *APIError. Bodies that are
// not the expected JSON shape still produce a usable error.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// IsNotFound reports whether err is a service 404.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is a service 401 — an invalid or
// expired session/token.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsForbidden reports whether err is a service 403.
func IsForbidden(err error) bool { return hasStatus(err, http.StatusForbidden) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
