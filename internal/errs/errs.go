// Package errs defines the error kinds the transcription pipeline produces
// and their HTTP status mapping.
package errs

import (
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindSourceNotFound Kind = "SOURCE_NOT_FOUND"
	KindAcquisition    Kind = "ACQUISITION_FAILURE"
	KindRecognition    Kind = "RECOGNITION_FAILURE"
	KindInvalidInput   Kind = "INVALID_INPUT"
	KindNotFound       Kind = "NOT_FOUND"
	KindInternal       Kind = "INTERNAL"
)

// Error is the unified pipeline error: a kind, a human message, the HTTP
// status a handler should answer with, and the wrapped cause.
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, status int, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: status,
		Cause:      cause,
	}
}

// SourceNotFound reports a local input path that does not exist.
func SourceNotFound(path string, cause error) *Error {
	return newError(KindSourceNotFound, http.StatusNotFound, cause, "input file not found: %s", path)
}

// Acquisition reports a download/extraction failure.
func Acquisition(cause error, format string, args ...any) *Error {
	return newError(KindAcquisition, http.StatusBadGateway, cause, format, args...)
}

// Recognition reports a model load or decode failure.
func Recognition(cause error, format string, args ...any) *Error {
	return newError(KindRecognition, http.StatusInternalServerError, cause, format, args...)
}

// InvalidInput reports a request the caller can fix.
func InvalidInput(format string, args ...any) *Error {
	return newError(KindInvalidInput, http.StatusBadRequest, nil, format, args...)
}

// NotFound reports a missing output file.
func NotFound(name string) *Error {
	return newError(KindNotFound, http.StatusNotFound, nil, "file not found: %s", name)
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, cause, "internal error")
}
