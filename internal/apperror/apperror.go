package apperror

import (
	"errors"
	"fmt"
)

// Kind is a machine-checkable failure category. Handlers map kinds to
// HTTP statuses; clients branch on them instead of parsing messages.
type Kind string

const (
	Unauthenticated     Kind = "unauthenticated"
	InvalidRequest      Kind = "invalid_request"
	NotFound            Kind = "not_found"
	DailyLimitExceeded  Kind = "daily_limit_exceeded"
	BannedContent       Kind = "banned_content"
	InsufficientSeconds Kind = "insufficient_seconds"
	InvalidPackage      Kind = "invalid_package"
	BelowMinimum        Kind = "below_minimum"
	InsufficientBalance Kind = "insufficient_balance"
	MissingAccountInfo  Kind = "missing_account_info"
	BackendError        Kind = "backend_error"
	Internal            Kind = "internal_error"
)

// Error carries a kind plus a human-readable message in the ledger's
// domain language. Validation and policy failures use specific kinds;
// datastore failures collapse to Internal with a generic message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Internal error around err, hiding its detail from the
// user-facing message.
func Wrap(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UserMessage returns the message safe to show to a caller. Internal
// errors yield a generic retry hint instead of raw error detail.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Internal {
		return ae.Message
	}
	return "something went wrong, please try again later"
}
