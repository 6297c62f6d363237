package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures the way the API surface reports them.
type ErrorKind int

const (
	// Unauthenticated: missing or unverifiable credential.
	Unauthenticated ErrorKind = iota
	// PermissionDenied: role or ownership check failed.
	PermissionDenied
	// NotFound: referenced document absent.
	NotFound
	// InvalidArgument: malformed or missing field, invalid enum value.
	InvalidArgument
	// Upstream: datastore or push-channel call failed.
	Upstream
)

// Error carries a kind plus a message safe to return to clients.
// Unauthenticated and PermissionDenied messages must never reveal whether a
// resource exists.
type Error struct {
	Kind    ErrorKind
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

func E(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Ef(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapUpstream tags an external-collaborator failure without losing the cause.
func WrapUpstream(message string, err error) *Error {
	return &Error{Kind: Upstream, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Upstream for errors that
// did not originate in this package.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Upstream
}

func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
