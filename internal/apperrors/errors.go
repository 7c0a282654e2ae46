// Package apperrors defines the error kinds every resolver failure is reported as.
// Each error carries a machine-readable code and an HTTP status hint, and is rendered
// into the "extensions" member of a GraphQL error.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an Error.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindUnauthorized    Kind = "unauthorized"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindRemoteService   Kind = "remote_service"
	KindInternal        Kind = "internal"
)

// Error is a classified failure surfaced at the API boundary.
type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Extensions satisfies graphql-go's gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.Code,
		"http": map[string]interface{}{
			"status": e.Status,
		},
	}
}

func Unauthenticated(message string) *Error {
	if message == "" {
		message = "Not authenticated"
	}
	return &Error{Kind: KindUnauthenticated, Code: "UNAUTHENTICATED", Status: http.StatusUnauthorized, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Not authorized"
	}
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Status: http.StatusForbidden, Message: message}
}

// NotFound reports that an entity of the given kind does not exist.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: "BAD_USER_INPUT", Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Remote builds the error for a non-2xx answer of the auth service. The code is the
// status text in upper snake case ("Not Found" -> "NOT_FOUND"); an empty message falls
// back to "<status text> occurred".
func Remote(status int, message string) *Error {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	if message == "" {
		message = text + " occurred"
	}
	return &Error{
		Kind:    KindRemoteService,
		Code:    strings.ToUpper(strings.ReplaceAll(text, " ", "_")),
		Status:  status,
		Message: message,
	}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	msg := "internal server error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// From returns the classified error inside err, or wraps err as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err carries an Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
