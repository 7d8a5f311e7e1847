// Package apperr classifies wallet failures into the kinds callers react to.
// Every failure is local to one operation; none of them is fatal to the process.
package apperr

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Kind is the category of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: missing or malformed input, no side effect performed.
	KindValidation
	// KindInsufficientFunds: the local balance pre-check failed, no network call made.
	KindInsufficientFunds
	// KindNetwork: balance lookup, blockhash fetch or submission transport failure.
	KindNetwork
	// KindLedgerRejection: the ledger refused or failed the transaction.
	KindLedgerRejection
	// KindConfirmationTimeout: the outcome is unknown, the transaction may still land.
	KindConfirmationTimeout
	// KindNotFound: the referenced record id does not exist.
	KindNotFound
	// KindStorage: the persistence medium failed.
	KindStorage
)

// String returns the stable code of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case KindNetwork:
		return "NETWORK"
	case KindLedgerRejection:
		return "LEDGER_REJECTION"
	case KindConfirmationTimeout:
		return "CONFIRMATION_TIMEOUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindStorage:
		return "STORAGE"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	// Signature is set when a transaction was submitted before the failure.
	Signature string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause implements the pkg/errors causer interface.
func (e *Error) Cause() error {
	return e.Err
}

// New returns an error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: errors.Errorf(format, args...).Error()}
}

// Wrap classifies err under kind. Returns nil if err is nil.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: errors.WithStack(err)}
}

// WithSignature attaches a transaction signature to a classified error.
func WithSignature(err error, signature string) error {
	var e *Error
	if stderrors.As(err, &e) {
		cp := *e
		cp.Signature = signature
		return &cp
	}
	return &Error{Kind: KindUnknown, Message: "transaction failed", Signature: signature, Err: err}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// SignatureOf returns the transaction signature attached to err, if any.
func SignatureOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Signature
	}
	return ""
}

func Validation(format string, args ...interface{}) error {
	return Newf(KindValidation, format, args...)
}

func NotFound(id string) error {
	return Newf(KindNotFound, "keypair %s not found", id)
}
