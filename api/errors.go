package api

import (
	"fmt"
	"net/http"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/tidwall/gjson"
)

// Error is a non-2xx backend response. It unwraps to one of the internal/errors sentinels.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}

var messagePaths = []string{"message", "error.message", "error_description", "error"}

func newError(method, path string, status int, body []byte) *Error {
	e := &Error{Method: method, Path: path, Status: status, kind: kindForStatus(status)}
	for _, p := range messagePaths {
		if m := gjson.GetBytes(body, p); m.Type == gjson.String && m.String() != "" {
			e.Message = m.String()
			break
		}
	}
	return e
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return perrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return perrors.ErrForbidden
	case status == http.StatusNotFound:
		return perrors.ErrNotFound
	case status >= 500:
		return perrors.ErrBackend
	default:
		return perrors.ErrValidation
	}
}
