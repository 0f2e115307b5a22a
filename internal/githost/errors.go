package githost

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed host operation. The store layer and the CLI
// branch on the kind, never on raw status codes.
type Kind string

const (
	// KindNotFound means the resource is absent. Callers may treat it as
	// empty/default where that makes sense (missing config files).
	KindNotFound Kind = "not_found"

	// KindUnauthorized means the credential is bad or expired. Fatal to
	// the current session; the caller must re-authenticate.
	KindUnauthorized Kind = "unauthorized"

	// KindForbidden means the token lacks the required scope or the user
	// lacks permission. Callers may degrade to read-only.
	KindForbidden Kind = "forbidden"

	// KindConflict means a write was rejected because the expected blob
	// SHA no longer matches remote state. Recoverable by refetching and
	// retrying; never auto-resolved.
	KindConflict Kind = "conflict"

	// KindMalformed means a response or record could not be decoded.
	KindMalformed Kind = "malformed"

	// KindUnavailable means the transport failed before a status code
	// was obtained.
	KindUnavailable Kind = "unavailable"
)

// Error represents a failed operation against the git host. It carries the
// classified kind, the HTTP status (zero for transport failures), and the
// host's message, which is suitable for user display.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (err *Error) Error() string {
	if err.StatusCode == 0 {
		return fmt.Sprintf("githost: %s", err.Message)
	}
	return fmt.Sprintf("githost: HTTP %d: %s", err.StatusCode, err.Message)
}

// ErrorKind returns the classification of err, or the empty Kind if err is
// not a *githost.Error.
func ErrorKind(err error) Kind {
	var hostErr *Error
	if errors.As(err, &hostErr) {
		return hostErr.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found response.
func IsNotFound(err error) bool { return ErrorKind(err) == KindNotFound }

// IsUnauthorized reports whether err is a bad-credential response.
func IsUnauthorized(err error) bool { return ErrorKind(err) == KindUnauthorized }

// IsForbidden reports whether err is an insufficient-permission response.
func IsForbidden(err error) bool { return ErrorKind(err) == KindForbidden }

// IsConflict reports whether err is a stale-SHA write rejection.
func IsConflict(err error) bool { return ErrorKind(err) == KindConflict }

// IsMalformed reports whether err is a decode failure.
func IsMalformed(err error) bool { return ErrorKind(err) == KindMalformed }

// IsUnavailable reports whether err is a transport-level failure.
func IsUnavailable(err error) bool { return ErrorKind(err) == KindUnavailable }

// classifyStatus maps an HTTP status code to an error kind. GitHub signals
// a contents-API SHA mismatch with 409, and a missing-or-wrong "sha" field
// on an existing file with 422; both are stale-write conflicts from the
// caller's point of view.
func classifyStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return KindConflict
	default:
		return KindUnavailable
	}
}

// transportError wraps a transport failure (no HTTP status obtained) as an
// Unavailable error.
func transportError(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: err.Error()}
}

// malformedError wraps a response decode failure.
func malformedError(context string, err error) *Error {
	return &Error{Kind: KindMalformed, Message: fmt.Sprintf("%s: %v", context, err)}
}
