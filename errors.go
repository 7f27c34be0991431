package stroopwafel

import (
	"fmt"
)

// Kind identifies the category of a stroopwafel failure, independent
// of the human-readable message. Callers that need to branch on
// failure type (rather than just logging it) should switch on Kind
// rather than comparing error strings.
type Kind uint8

const (
	// KindInvalidSignature means the recomputed chain did not match
	// the credential's stored signature.
	KindInvalidSignature Kind = iota

	// KindCaveatViolation means a verifier rejected a first-party
	// caveat.
	KindCaveatViolation

	// KindInvalidPredicate means a predicate string failed to parse.
	KindInvalidPredicate

	// KindUnsupportedThirdParty means a third-party caveat was
	// encountered with no matching or valid discharge.
	KindUnsupportedThirdParty

	// KindDeserializationError means wire bytes/text were not
	// parseable in the claimed format.
	KindDeserializationError

	// KindInvalidFormat means input parsed but violated a structural
	// invariant (wrong signature length, unknown caveat shape, ...).
	KindInvalidFormat

	// KindCryptoError is reserved for cryptographic primitive
	// failures. HMAC itself never fails on well-formed input; this
	// exists so the taxonomy has a slot if that ever changes.
	KindCryptoError

	// KindInvalidKeyLength means key material was the wrong size
	// where a size is required.
	KindInvalidKeyLength
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidSignature:
		return "invalid signature"
	case KindCaveatViolation:
		return "caveat violation"
	case KindInvalidPredicate:
		return "invalid predicate"
	case KindUnsupportedThirdParty:
		return "unsupported third-party caveat"
	case KindDeserializationError:
		return "deserialization error"
	case KindInvalidFormat:
		return "invalid format"
	case KindCryptoError:
		return "crypto error"
	case KindInvalidKeyLength:
		return "invalid key length"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every fallible
// operation in this package. It carries a Kind for programmatic
// dispatch and an optional wrapped cause for diagnostics.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// Kind returns the category of failure.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
	}
	if e.msg != "" {
		return fmt.Sprintf("%s: %s", e.kind, e.msg)
	}
	return e.kind.String()
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is the sentinel for this error's Kind,
// so callers can write errors.Is(err, ErrInvalidSignature) instead of
// type-asserting and comparing Kind().
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.kind == e.kind && sentinel.msg == ""
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func wrapError(kind Kind, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// Sentinel errors for each Kind, for use with errors.Is. These carry
// no message or cause; (*Error).Is matches any error of the same Kind
// against them, mirroring how lnd's macaroons package exposes
// package-level Err* sentinels for its own failure modes.
var (
	ErrInvalidSignature      = &Error{kind: KindInvalidSignature}
	ErrCaveatViolation       = &Error{kind: KindCaveatViolation}
	ErrInvalidPredicate      = &Error{kind: KindInvalidPredicate}
	ErrUnsupportedThirdParty = &Error{kind: KindUnsupportedThirdParty}
	ErrDeserialization       = &Error{kind: KindDeserializationError}
	ErrInvalidFormat         = &Error{kind: KindInvalidFormat}
	ErrCrypto                = &Error{kind: KindCryptoError}
	ErrInvalidKeyLength      = &Error{kind: KindInvalidKeyLength}
)

// CaveatViolation reports the index and content of the caveat that
// failed verification, so callers can produce precise diagnostics
// without re-walking the credential.
type CaveatViolation struct {
	Err *Error

	// Index is the position of the offending caveat within
	// Credential.Caveats.
	Index int

	// Predicate is the raw caveat_id bytes that failed to verify.
	Predicate []byte
}

func (c *CaveatViolation) Error() string { return c.Err.Error() }

func (c *CaveatViolation) Unwrap() error { return c.Err }

func (c *CaveatViolation) Kind() Kind { return c.Err.Kind() }

func (c *CaveatViolation) Is(target error) bool { return c.Err.Is(target) }

func newCaveatViolation(index int, predicate []byte, cause error) *CaveatViolation {
	return &CaveatViolation{
		Err: wrapError(
			KindCaveatViolation,
			fmt.Sprintf("caveat %d rejected", index),
			cause,
		),
		Index:     index,
		Predicate: predicate,
	}
}
