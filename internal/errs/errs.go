package errs

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

type Kind string

const (
	// Fatal, startup only.
	KindConfiguration     Kind = "configuration"
	KindSourceUnavailable Kind = "source_unavailable"

	// Per request.
	KindValidation Kind = "validation"
	KindUpstream   Kind = "upstream"

	KindInternal Kind = "internal"
)

// HTTPStatus maps the error kind to the status code returned at the request boundary.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Fatal reports whether the kind must stop the process before it serves traffic.
func (k Kind) Fatal() bool {
	return k == KindConfiguration || k == KindSourceUnavailable
}

type Error struct {
	Kind    Kind
	Message string
	// Detail keeps diagnostic text (e.g. raw upstream body).
	Detail string
	// Status is the upstream HTTP status, 0 when there was no response.
	Status int
	Cause  error
}

type ErrorOpts struct {
	Message string
	Detail  string
	Status  int
}

func (this *Error) Error() string {
	msg := string(this.Kind)
	if this.Message != "" {
		msg += ": " + this.Message
	}
	if this.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", this.Status)
	}
	if this.Cause != nil {
		msg += ": " + this.Cause.Error()
	}
	return msg
}

func (this *Error) Unwrap() error {
	return this.Cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to err. An *Error already carried by err is returned untouched.
func Wrap(kind Kind, err error, opts *ErrorOpts) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	wrapped := &Error{Kind: kind, Cause: err}
	if opts != nil {
		wrapped.Message = opts.Message
		wrapped.Detail = opts.Detail
		wrapped.Status = opts.Status
	}
	return wrapped
}

// KindOf returns the kind carried by err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
