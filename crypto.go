package stroopwafel

import (
	"crypto/hmac"
	"crypto/subtle"

	"golang.org/x/crypto/sha3"
)

// SignatureSize is the length in bytes of a stroopwafel's signature:
// one HMAC-SHA3-256 output.
const SignatureSize = 32

// Signature is a fixed-width chain signature.
type Signature [SignatureSize]byte

// hmacSHA3 computes HMAC-SHA3-256(key, message). HMAC accepts keys of
// any length (RFC 2104's key normalization applies), so this never
// fails on well-formed input.
func hmacSHA3(key, message []byte) Signature {
	mac := hmac.New(sha3.New256, key)
	mac.Write(message)

	var sig Signature
	copy(sig[:], mac.Sum(nil))
	return sig
}

// seed computes the initial signature for a freshly minted credential:
// HMAC(root_key, identifier).
func seed(rootKey, identifier []byte) Signature {
	return hmacSHA3(rootKey, identifier)
}

// step folds one caveat into the chain: HMAC(prevSig, binding), where
// binding is the caveat's binding bytes (see caveat.binding). Using
// the previous signature as the HMAC key is what makes the chain
// monotonically extensible and non-invertible: a holder who knows
// only sig[n] cannot recover sig[n-1] or forge sig[n] for a different
// caveat sequence without root_key.
func step(prevSig Signature, binding []byte) Signature {
	return hmacSHA3(prevSig[:], binding)
}

// constantTimeEqual reports whether a and b are equal, in time
// independent of where they first differ. Returns false immediately
// (but still in constant time relative to the comparison itself) for
// unequal lengths, per spec: no early exit based on content.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
