package api

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure so callers can dispatch on structure
// (log out vs. show a message) instead of matching message substrings.
type Kind int

const (
	// KindTransport covers network and connection failures. Never retried.
	KindTransport Kind = iota
	// KindUnauthorized is an authentication failure that survived the single
	// refresh-and-retry. The usual policy is a forced logout.
	KindUnauthorized
	// KindValidation is a 4xx with a structured error body. The message holds
	// the first field-level error and is meant for the user.
	KindValidation
	// KindServer covers 5xx responses and error bodies that could not be parsed.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Sentinels for errors.Is matching against *Error kinds.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)

// Error is the typed failure raised by the gateway.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for transport failures
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrUnavailable)
// match on the structured kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrUnavailable:
		return e.Kind == KindTransport
	}
	return false
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
}
