package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping and retry decisions.
// Validation and NotFound are never retried; Unavailable marks a failed
// call to an external collaborator (blob store, mail provider).
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindUnavailable
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Unavailable(msg string, cause error) error {
	return &Error{Kind: KindUnavailable, Msg: msg, Err: cause}
}

// KindOf reports the Kind of err when it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsValidation(err error) bool  { k, ok := KindOf(err); return ok && k == KindValidation }
func IsNotFound(err error) bool    { k, ok := KindOf(err); return ok && k == KindNotFound }
func IsForbidden(err error) bool   { k, ok := KindOf(err); return ok && k == KindForbidden }
func IsUnavailable(err error) bool { k, ok := KindOf(err); return ok && k == KindUnavailable }

// HTTPStatus maps an error to the status code handlers should return.
func HTTPStatus(err error) int {
	switch k, ok := KindOf(err); {
	case !ok:
		return http.StatusInternalServerError
	case k == KindValidation:
		return http.StatusBadRequest
	case k == KindNotFound:
		return http.StatusNotFound
	case k == KindForbidden:
		return http.StatusForbidden
	case k == KindUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
