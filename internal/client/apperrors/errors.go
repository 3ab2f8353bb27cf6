// Package apperrors defines the closed failure taxonomy of the client and
// the single boundary translating raw transport conditions into it.
package apperrors

// Kind identifies where in the taxonomy a failure falls. The set is closed:
// every failure a flow operation can surface maps to exactly one Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetworkUnreachable
	KindTimeout
	KindCancelled
	KindClientError
	KindServerError
	KindSchemaMismatch
	KindLocalValidation
	KindMissingContext
)

func (k Kind) String() string {
	switch k {
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindClientError:
		return "client_error"
	case KindServerError:
		return "server_error"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindLocalValidation:
		return "local_validation"
	case KindMissingContext:
		return "missing_context"
	default:
		return "unknown"
	}
}

// Error is the terminal representation of any failure. Message is always
// user-facing; the raw cause stays wrapped for errors.Is/As but never
// leaks past this type.
type Error struct {
	Kind      Kind
	Message   string
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a locally raised record (validation failures, missing flow
// state). Locally raised records are never retryable.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
