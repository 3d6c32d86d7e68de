// Package rpcerr turns data-store failures into the normalized
// {status, message} errors the transports hand back to remote callers.
//
// The Translator is the single funnel for store errors: it passes
// already-normalized errors through, maps known store codes via a CodeMap
// (interpolating {{key}} placeholders), and collapses validation and unknown
// failures into generic per-context messages while logging the details.
package rpcerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the normalized error shape. Status is an HTTP status code.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Status, e.Message)
}

// As reports whether err is, or wraps, a normalized error.
func As(err error) (*Error, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}
