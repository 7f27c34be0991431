package stroopwafel

import "unicode/utf8"

// Verifier decides whether a first-party caveat's predicate is
// satisfied. Built-in variants below cover the composable cases spec
// §4.5 requires; a Functional verifier covers everything else.
type Verifier interface {
	// VerifyCaveat reports nil if predicate is satisfied, or an error
	// otherwise (the built-in variants return a KindCaveatViolation
	// *Error). Credential.Verify wraps that error in a
	// *CaveatViolation carrying the caveat's index and content.
	VerifyCaveat(predicate []byte) error
}

// acceptAllVerifier always accepts. Useful for signature-only tests.
type acceptAllVerifier struct{}

// AcceptAll returns a Verifier that accepts every caveat.
func AcceptAll() Verifier { return acceptAllVerifier{} }

func (acceptAllVerifier) VerifyCaveat(predicate []byte) error {
	return nil
}

// rejectAllVerifier always rejects. Useful for testing failure paths.
type rejectAllVerifier struct{}

// RejectAll returns a Verifier that rejects every caveat.
func RejectAll() Verifier { return rejectAllVerifier{} }

func (rejectAllVerifier) VerifyCaveat(predicate []byte) error {
	return newError(KindCaveatViolation, "rejected by RejectAll verifier")
}

// FuncVerifier adapts a plain function to the Verifier interface.
type FuncVerifier func(predicate []byte) error

// OfFunction returns a Verifier backed by f.
func OfFunction(f func(predicate []byte) error) Verifier {
	return FuncVerifier(f)
}

// VerifyCaveat calls the underlying function.
func (f FuncVerifier) VerifyCaveat(predicate []byte) error {
	return f(predicate)
}

// CompositeVerifier tries each child in order and succeeds if any one
// does; an empty composite accepts everything. It short-circuits on
// the first Ok and, on total failure, returns the last child's error.
type CompositeVerifier struct {
	children []Verifier
}

// Composite builds a CompositeVerifier owning the given children.
func Composite(children ...Verifier) *CompositeVerifier {
	return &CompositeVerifier{children: children}
}

// Add appends another verifier to try.
func (c *CompositeVerifier) Add(v Verifier) *CompositeVerifier {
	c.children = append(c.children, v)
	return c
}

// VerifyCaveat implements Verifier.
func (c *CompositeVerifier) VerifyCaveat(predicate []byte) error {
	if len(c.children) == 0 {
		return nil
	}

	var lastErr error
	for _, child := range c.children {
		if err := child.VerifyCaveat(predicate); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return lastErr
}

// ContextVerifier evaluates a caveat's predicate (spec §4.4 grammar)
// against a name->value context map. This is the workhorse verifier:
// most first-party caveats exist to be checked against request
// context (account, action, time, ...).
type ContextVerifier struct {
	context map[string]string
}

// NewContextVerifier builds a ContextVerifier from an existing map.
// The map is copied; later mutation of the argument doesn't affect
// the verifier.
func NewContextVerifier(context map[string]string) *ContextVerifier {
	cv := &ContextVerifier{context: make(map[string]string, len(context))}
	for k, v := range context {
		cv.context[k] = v
	}
	return cv
}

// EmptyContext builds a ContextVerifier with no entries; use With to
// populate it fluently.
func EmptyContext() *ContextVerifier {
	return &ContextVerifier{context: make(map[string]string)}
}

// With sets key=value and returns the verifier, for fluent
// construction: EmptyContext().With("account", "alice").With(...).
func (c *ContextVerifier) With(key, value string) *ContextVerifier {
	c.context[key] = value
	return c
}

// Set sets key=value in place.
func (c *ContextVerifier) Set(key, value string) {
	c.context[key] = value
}

// VerifyCaveat parses predicate as UTF-8 (non-UTF-8 bytes fail), then
// as a Predicate (spec §4.4); a parse failure or a false evaluation
// both surface as CaveatViolation, per spec §4.5.
func (c *ContextVerifier) VerifyCaveat(predicate []byte) error {
	if !utf8.Valid(predicate) {
		return newError(KindCaveatViolation, "predicate is not valid UTF-8")
	}

	pred, err := ParsePredicate(string(predicate))
	if err != nil {
		return wrapError(
			KindCaveatViolation,
			"predicate failed to parse",
			err,
		)
	}

	if !pred.Eval(c.context) {
		return newError(
			KindCaveatViolation,
			"predicate '"+string(predicate)+"' not satisfied",
		)
	}

	return nil
}
