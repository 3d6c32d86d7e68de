// Package storeerr defines the two error shapes the data-access layer can
// produce: a KnownRequestError carrying a machine-readable code, and a
// ValidationError for malformed input or queries. Anything else coming out of
// the store is an unknown error.
package storeerr

import (
	"fmt"
)

const (
	CodeDuplicateKey         = "DUPLICATE_KEY"
	CodeForeignKeyViolation  = "FOREIGN_KEY_VIOLATION"
	CodeValueTooLong         = "VALUE_TOO_LONG"
	CodeRecordNotFound       = "RECORD_NOT_FOUND"
	CodeNotNullViolation     = "NOT_NULL_VIOLATION"
	CodeCheckViolation       = "CHECK_VIOLATION"
	CodeSerializationFailure = "SERIALIZATION_FAILURE"
)

type KnownRequestError struct {
	Code    string
	Message string
	Meta    map[string]string
	cause   error
}

func NewKnownRequestError(code, message string, cause error) *KnownRequestError {
	return &KnownRequestError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

func (e *KnownRequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *KnownRequestError) Unwrap() error {
	return e.cause
}

// WithMeta returns a copy of e with key set in Meta.
func (e *KnownRequestError) WithMeta(key, value string) *KnownRequestError {
	meta := make(map[string]string, len(e.Meta)+1)
	for k, v := range e.Meta {
		meta[k] = v
	}
	meta[key] = value

	return &KnownRequestError{
		Code:    e.Code,
		Message: e.Message,
		Meta:    meta,
		cause:   e.cause,
	}
}

type ValidationError struct {
	Message string
	cause   error
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		Message: message,
		cause:   cause,
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}
