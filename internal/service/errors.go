package service

import (
	"errors"

	"github.com/yy933/twitter-api-2020/internal/util"
)

// Kind classifies a service failure. Each kind is observable on its own by
// callers and maps to one transport status.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidCredential
	KindUnauthenticated
	KindForbidden
	KindSelfReference
	KindAlreadyExists
	KindEdgeNotFound
	KindValidationFailed
)

var kindNames = [...]string{
	KindInternal:          "internal",
	KindNotFound:          "not found",
	KindInvalidCredential: "invalid credential",
	KindUnauthenticated:   "unauthenticated",
	KindForbidden:         "forbidden",
	KindSelfReference:     "self reference",
	KindAlreadyExists:     "already exists",
	KindEdgeNotFound:      "edge not found",
	KindValidationFailed:  "validation failed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error is a classified service failure. Message is safe to show to clients;
// the wrapped cause is not.
type Error struct {
	Kind    Kind
	Message string
	Fields  []util.FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrUnauthenticated   = &Error{Kind: KindUnauthenticated}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrSelfReference     = &Error{Kind: KindSelfReference}
	ErrAlreadyExists     = &Error{Kind: KindAlreadyExists}
	ErrEdgeNotFound      = &Error{Kind: KindEdgeNotFound}
	ErrValidationFailed  = &Error{Kind: KindValidationFailed}
)

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
