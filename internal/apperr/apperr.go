// Package apperr gives every layer one way to report failure. Repositories
// and services return *Error values tagged with a Kind; handlers translate
// the Kind into an HTTP status in a single place.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindInternal         Kind = iota // unexpected failure, details are not shown to callers
	KindNotFound                     // referenced entity is absent
	KindInvalidReference             // entity exists but fails an ownership or role predicate
	KindInvalid                      // request is malformed or violates a field rule
	KindConflict                     // unique constraint or state conflict
	KindUpstream                     // external provider call failed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidReference:
		return "invalid_reference"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is a failure with a kind and a caller-safe message.
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

// Is matches another *Error of the same kind, so errors.Is(err, apperr.ErrNotFound) works
// for any not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidReference = &Error{Kind: KindInvalidReference}
	ErrInvalid          = &Error{Kind: KindInvalid}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrUpstream         = &Error{Kind: KindUpstream}
)

func NotFound(msg string) error         { return &Error{Kind: KindNotFound, Msg: msg} }
func InvalidReference(msg string) error { return &Error{Kind: KindInvalidReference, Msg: msg} }
func Invalid(msg string) error          { return &Error{Kind: KindInvalid, Msg: msg} }
func Conflict(msg string) error         { return &Error{Kind: KindConflict, Msg: msg} }

// Upstream wraps a provider failure. The cause is kept for logs only.
func Upstream(msg string, cause error) error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: cause}
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}
