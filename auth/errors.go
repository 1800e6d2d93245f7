package auth

import (
	"errors"
	"fmt"
)

// Kind classifies why the guard rejected a request
type Kind string

const (
	KindNoCredential         Kind = "no_credential"
	KindInvalidCredential    Kind = "invalid_credential"
	KindNotProvisioned       Kind = "not_provisioned"
	KindVerifierUnavailable  Kind = "verifier_unavailable"
	KindUserStoreUnavailable Kind = "user_store_unavailable"
)

var (
	// ErrUnavailable is wrapped by collaborators when they could not reach their backend
	// (key set fetch, network). The guard reports those as outages, not bad credentials.
	ErrUnavailable = errors.New("collaborator unavailable")

	// ErrUserNotFound is returned by a UserResolver when no local user maps to the subject
	ErrUserNotFound = errors.New("no local user for subject")
)

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrNoCredential         = &Error{Kind: KindNoCredential}
	ErrInvalidCredential    = &Error{Kind: KindInvalidCredential}
	ErrNotProvisioned       = &Error{Kind: KindNotProvisioned}
	ErrVerifierUnavailable  = &Error{Kind: KindVerifierUnavailable}
	ErrUserStoreUnavailable = &Error{Kind: KindUserStoreUnavailable}
)

// Error is returned by Guard.Authenticate. Cause is diagnostic detail only.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	msg := "unauthenticated: " + e.Kind.message()
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind so callers can compare against the package sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Unavailable reports whether the failure was an outage of a collaborator
// rather than a problem with the presented credential.
func (e *Error) Unavailable() bool {
	return e.Kind == KindVerifierUnavailable || e.Kind == KindUserStoreUnavailable
}

func (k Kind) message() string {
	switch k {
	case KindNoCredential:
		return "no credential"
	case KindInvalidCredential:
		return "invalid credential"
	case KindNotProvisioned:
		return "identity not provisioned"
	case KindVerifierUnavailable:
		return "identity verifier unavailable"
	case KindUserStoreUnavailable:
		return "user store unavailable"
	default:
		return string(k)
	}
}

// KindOf returns the failure kind of err, or "" if err did not come from the guard
func KindOf(err error) Kind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}
