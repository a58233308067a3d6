package accountsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidRefresher = errors.New("invalid refresher")
	ErrInvalidToken     = errors.New("invalid token")
)

// ValidationError reports bad caller input. It is always returned before any
// request is made.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("accountsdk: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ============================================================================
// State Errors
// ============================================================================

// StateError reports an API handle that can't make the requested call in its
// current state.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return "accountsdk: " + e.Reason }

var (
	// ErrNoToken is returned by authenticated calls on a handle with no token.
	ErrNoToken = &StateError{Reason: "no token set, log in first"}

	// ErrNoRefresherConfigured is returned when an expired token has no way
	// to refresh itself.
	ErrNoRefresherConfigured = &StateError{Reason: "token expired and no refresher is configured"}
)

// ============================================================================
// Flow Errors
// ============================================================================

var (
	// ErrCorruptBackupPayload means the stored backup or the salts needed to
	// open it are missing or malformed.
	ErrCorruptBackupPayload = errors.New("accountsdk: corrupt backup payload")

	// ErrIncorrectPassword is returned by ChangePassword when the current
	// password does not match the profile's signing key.
	ErrIncorrectPassword = errors.New("accountsdk: incorrect password")
)

// ============================================================================
// Remote Errors
// ============================================================================

// ErrRemoteRequestFailed matches every RemoteError via errors.Is.
var ErrRemoteRequestFailed = errors.New("accountsdk: remote request failed")

// RemoteError is returned for any non-2xx response. Message is derived from
// the status class only, so 5xx responses never surface server internals in
// Error(). The raw response and body are kept for inspection.
type RemoteError struct {
	StatusCode  int
	Message     string
	Code        string
	Description string

	Response *http.Response
	Body     []byte
}

func (e *RemoteError) Error() string {
	if e.Description == "" || e.StatusCode >= http.StatusInternalServerError {
		return fmt.Sprintf("accountsdk: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("accountsdk: %s (HTTP %d): %s", e.Message, e.StatusCode, e.Description)
}

func (e *RemoteError) Unwrap() error { return ErrRemoteRequestFailed }

// remoteMessage maps a status code onto the message shown to callers.
func remoteMessage(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return "Server Error"
	case code == http.StatusUnauthorized:
		return "Unauthorized: credentials were rejected"
	case code == http.StatusForbidden:
		return "Forbidden: not permitted for this account"
	case code == http.StatusNotFound:
		return "Not Found"
	case code == http.StatusTooManyRequests:
		return "Too Many Requests: slow down and retry later"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Request Failed"
}

// parseErrorResponse builds a RemoteError from a non-2xx response whose body
// has already been read.
func parseErrorResponse(resp *http.Response, body []byte) error {
	e := &RemoteError{
		StatusCode: resp.StatusCode,
		Message:    remoteMessage(resp.StatusCode),
		Response:   resp,
		Body:       body,
	}

	var er ErrorResponse
	if json.Unmarshal(body, &er) == nil {
		e.Code = er.Error
		e.Description = er.ErrorDescription
	}
	return e
}

// IsStatus reports whether err is a RemoteError with the given status.
func IsStatus(err error, code int) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.StatusCode == code
}
