package stroopwafel

import "testing"

func TestAcceptAllVerifier(t *testing.T) {
	v := AcceptAll()
	if err := v.VerifyCaveat([]byte("anything")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRejectAllVerifier(t *testing.T) {
	v := RejectAll()
	if err := v.VerifyCaveat([]byte("anything")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestFuncVerifier(t *testing.T) {
	v := OfFunction(func(predicate []byte) error {
		if string(predicate) == "allowed" {
			return nil
		}
		return newError(KindCaveatViolation, "not allowed")
	})

	if err := v.VerifyCaveat([]byte("allowed")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("denied")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestCompositeVerifierEmpty(t *testing.T) {
	c := Composite()
	if err := c.VerifyCaveat([]byte("anything")); err != nil {
		t.Fatalf("empty composite should accept everything, got: %v", err)
	}
}

func TestCompositeVerifierShortCircuits(t *testing.T) {
	secondCalled := false
	c := Composite(
		OfFunction(func(p []byte) error {
			if string(p) == "alice" {
				return nil
			}
			return newError(KindCaveatViolation, "not alice")
		}),
		OfFunction(func(p []byte) error {
			secondCalled = true
			if string(p) == "bob" {
				return nil
			}
			return newError(KindCaveatViolation, "not bob")
		}),
	)

	if err := c.VerifyCaveat([]byte("alice")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondCalled {
		t.Fatalf("second child should not run once the first accepts")
	}
	if err := c.VerifyCaveat([]byte("bob")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.VerifyCaveat([]byte("charlie")); err == nil {
		t.Fatalf("expected an error for a predicate no child accepts")
	}
}

func TestContextVerifierBasic(t *testing.T) {
	v := NewContextVerifier(map[string]string{"account": "alice"})

	if err := v.VerifyCaveat([]byte("account = alice")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("account = bob")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestContextVerifierBuilder(t *testing.T) {
	v := EmptyContext().With("account", "alice").With("action", "read")

	if err := v.VerifyCaveat([]byte("account = alice")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("action = read")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("action = write")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestContextVerifierNumeric(t *testing.T) {
	v := EmptyContext().With("age", "25").With("count", "100")

	if err := v.VerifyCaveat([]byte("age >= 18")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("age < 30")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.VerifyCaveat([]byte("count > 200")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestContextVerifierInvalidPredicate(t *testing.T) {
	v := EmptyContext()
	err := v.VerifyCaveat([]byte("not a valid predicate"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errorsIsKind(err, KindCaveatViolation) {
		t.Fatalf("expected KindCaveatViolation, got %v", err)
	}
}

func TestContextVerifierInvalidUTF8(t *testing.T) {
	v := EmptyContext()
	err := v.VerifyCaveat([]byte{0xff, 0xfe, 0xfd})
	if err == nil {
		t.Fatalf("expected an error for non-UTF-8 predicate")
	}
}
