// Package apperrors defines the error taxonomy surfaced by the core
// layers. Handlers translate these kinds to HTTP status codes; the core
// never depends on the transport.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindNotFound means a referenced entity id does not exist.
	KindNotFound Kind = iota
	// KindConflict means a unique-key invariant was violated (duplicate
	// username/email, duplicate like or follow, self-follow).
	KindConflict
	// KindForbidden means the actor does not own the mutated entity.
	KindForbidden
	// KindValidation means the input was malformed or incomplete.
	KindValidation
	// KindIntegrity means the store holds a dangling reference. This is
	// an invariant violation, never masked.
	KindIntegrity
)

// Error is a kinded application error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a unique-key violation.
func Conflict(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an ownership violation.
func Forbidden(format string, args ...interface{}) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed input.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Integrity reports a dangling reference inside the store.
func Integrity(format string, args ...interface{}) error {
	return &Error{Kind: KindIntegrity, Message: fmt.Sprintf(format, args...)}
}

func is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsConflict reports whether err is a Conflict error.
func IsConflict(err error) bool { return is(err, KindConflict) }

// IsForbidden reports whether err is a Forbidden error.
func IsForbidden(err error) bool { return is(err, KindForbidden) }

// IsValidation reports whether err is a Validation error.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsIntegrity reports whether err is an Integrity error.
func IsIntegrity(err error) bool { return is(err, KindIntegrity) }
