// Package errs defines the error taxonomy shared by the lifecycle services
// and mapped to HTTP status codes at the API boundary.
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels. Service errors wrap exactly one of these so callers can
// classify with errors.Is regardless of the message.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

// Error carries a user-facing message on top of a kind sentinel.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// NotFound reports a missing entity by type name and id.
func NotFound(entity string, id uint) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf("%s %d not found", entity, id)}
}

// NotFoundMsg reports a missing entity or relation with a custom message.
func NotFoundMsg(msg string) error {
	return &Error{kind: ErrNotFound, msg: msg}
}

// Conflict reports a business-rule violation at creation time.
func Conflict(msg string) error {
	return &Error{kind: ErrConflict, msg: msg}
}

// InvalidState reports an operation against an entity in the wrong
// lifecycle state. The message is preserved verbatim for the caller.
func InvalidState(msg string) error {
	return &Error{kind: ErrInvalidState, msg: msg}
}

// Validation reports malformed input that passed the outer request layer.
func Validation(msg string) error {
	return &Error{kind: ErrValidation, msg: msg}
}
