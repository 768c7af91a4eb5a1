package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPermissionDenied
	KindValidation
	KindRateLimited
)

// Status returns the HTTP status code a kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Label is the short error name placed in the "error" field of responses.
func (k Kind) Label() string {
	switch k {
	case KindNotFound:
		return "Resource Not Found"
	case KindPermissionDenied:
		return "Permission Denied"
	case KindValidation:
		return "Validation Error"
	case KindRateLimited:
		return "Too Many Requests"
	default:
		return "Server Error"
	}
}

// Error is the error type returned by services and repositories for anything
// a client should be able to tell apart.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrRateLimited      = &Error{Kind: KindRateLimited}
)

// NotFound builds the "<resource> with ID <id> not found" error.
func NotFound(resource, id string) *Error {
	msg := resource + " not found"
	if id != "" {
		msg = fmt.Sprintf("%s with ID %s not found", resource, id)
	}
	return &Error{Kind: KindNotFound, Message: msg}
}

func PermissionDenied(msg string) *Error {
	if msg == "" {
		msg = "You do not have permission to perform this action"
	}
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

func Validation(msg string) *Error {
	if msg == "" {
		msg = "Validation failed"
	}
	return &Error{Kind: KindValidation, Message: msg}
}

func RateLimited(bucket string) *Error {
	return &Error{Kind: KindRateLimited, Message: fmt.Sprintf("rate limit exceeded for %s", bucket)}
}

// Internal wraps an unexpected storage or runtime failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err; anything that is not an *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
