// Package apperr classifies failures so callers can choose between
// retrying, showing a field message, or giving up.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindTransient
	KindValidation
	KindConflict
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	Op   string
	Err  error
	// Fields holds per-field messages for validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func NotFound(op string, err error) *Error {
	return New(KindNotFound, op, err)
}

func Transient(op string, err error) *Error {
	return New(KindTransient, op, err)
}

func Validation(op string, err error) *Error {
	return New(KindValidation, op, err)
}

func ValidationFields(op string, err error, fields map[string]string) *Error {
	e := New(KindValidation, op, err)
	e.Fields = fields

	return e
}

func Conflict(op string, err error) *Error {
	return New(KindConflict, op, err)
}

func RateLimited(op string, err error) *Error {
	return New(KindRateLimited, op, err)
}

// KindOf returns the kind of the outermost *Error in the chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}

func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}

	return nil
}
