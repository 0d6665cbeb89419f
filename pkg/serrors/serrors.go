// Package serrors attaches a semantic kind to errors so transport layers can
// map failures to status codes without knowing their concrete cause.
package serrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a semantic error category created with NewKind.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a comparable kind sentinel.
func NewKind(name string) Kind { return kind{s: name} }

var (
	ErrNotFound     = NewKind("NOT_FOUND")
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	ErrForbidden    = NewKind("FORBIDDEN")
	// ErrBadRequest is malformed input: bad JSON, failed validation, unreadable CSV.
	ErrBadRequest = NewKind("BAD_REQUEST")
	ErrConflict   = NewKind("CONFLICT")
	// ErrUnprocessable is well-formed input the model cannot score, e.g. an
	// unknown categorical value.
	ErrUnprocessable = NewKind("UNPROCESSABLE")
	ErrInternal      = NewKind("INTERNAL")
	ErrTimeout       = NewKind("TIMEOUT")
	ErrUnavailable   = NewKind("UNAVAILABLE")
	ErrRateLimited   = NewKind("RATE_LIMITED")
)

var statusCodes = map[Kind]int{ //nolint: gochecknoglobals
	ErrNotFound:      http.StatusNotFound,
	ErrUnauthorized:  http.StatusUnauthorized,
	ErrForbidden:     http.StatusForbidden,
	ErrBadRequest:    http.StatusBadRequest,
	ErrConflict:      http.StatusConflict,
	ErrUnprocessable: http.StatusUnprocessableEntity,
	ErrInternal:      http.StatusInternalServerError,
	ErrTimeout:       http.StatusGatewayTimeout,
	ErrUnavailable:   http.StatusServiceUnavailable,
	ErrRateLimited:   http.StatusTooManyRequests,
}

// Error is a kinded error with an optional cause and message.
//
// errors.Is and errors.As match either the kind or anything in the cause chain.
// The message renders as "<msg>: <cause>", falling back to whichever is set
// and finally to the kind name.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With creates a kinded error with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap creates a kinded error around a cause.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates an error that only carries its kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) || (e.err != nil && errors.Is(e.err, target))
}

func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) || (e.err != nil && errors.As(e.err, target))
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Message() string { return e.msg }

func (e *Error) Cause() error { return e.err }

// KindOf returns the kind of the outermost kinded error in err's chain, or
// ErrInternal when there is none. A bare Kind is its own kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.kind != nil {
		return e.kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}

// StatusCode maps err to an HTTP status code through its kind.
func StatusCode(err error) int {
	if code, ok := statusCodes[KindOf(err)]; ok {
		return code
	}

	return http.StatusInternalServerError
}
