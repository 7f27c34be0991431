package stroopwafel

import "testing"

func TestMintIsDeterministic(t *testing.T) {
	rootKey := []byte("root secret")
	identifier := []byte("user:alice")

	c1 := Mint(rootKey, identifier)
	c2 := Mint(rootKey, identifier)

	if c1.Signature != c2.Signature {
		t.Fatalf("minting the same root key/identifier twice produced different signatures")
	}
}

func TestMintWithLocation(t *testing.T) {
	c := Mint([]byte("root"), []byte("id"), WithLocation("https://auth.example.com"))
	if c.Location == nil || *c.Location != "https://auth.example.com" {
		t.Fatalf("expected location to be set, got %v", c.Location)
	}
}

func TestMintIsUnrestricted(t *testing.T) {
	c := Mint([]byte("root"), []byte("id"))
	if !c.IsUnrestricted() {
		t.Fatalf("a freshly minted credential should be unrestricted")
	}
	if c.CaveatCount() != 0 {
		t.Fatalf("expected zero caveats, got %d", c.CaveatCount())
	}
}

func TestAppendFirstPartyChangesSignature(t *testing.T) {
	c := Mint([]byte("root"), []byte("id"))
	before := c.Signature

	c.AppendFirstParty([]byte("account = alice"))

	if c.Signature == before {
		t.Fatalf("appending a caveat should change the signature")
	}
	if c.CaveatCount() != 1 {
		t.Fatalf("expected one caveat, got %d", c.CaveatCount())
	}
	if c.IsUnrestricted() {
		t.Fatalf("a credential with caveats is not unrestricted")
	}
	if !c.Caveats[0].IsFirstParty() {
		t.Fatalf("expected a first-party caveat")
	}
}

func TestAppendFirstPartyOrderMatters(t *testing.T) {
	a := Mint([]byte("root"), []byte("id"))
	a.AppendFirstParty([]byte("p1"))
	a.AppendFirstParty([]byte("p2"))

	b := Mint([]byte("root"), []byte("id"))
	b.AppendFirstParty([]byte("p2"))
	b.AppendFirstParty([]byte("p1"))

	if a.Signature == b.Signature {
		t.Fatalf("caveat order should be part of the signed value")
	}
}

func TestAppendThirdParty(t *testing.T) {
	c := Mint([]byte("root"), []byte("id"))
	before := c.Signature

	c.AppendThirdParty([]byte("caveat-1"), []byte("shared-key"), "https://discharge.example.com")

	if c.Signature == before {
		t.Fatalf("appending a third-party caveat should change the signature")
	}
	if !c.Caveats[0].IsThirdParty() {
		t.Fatalf("expected a third-party caveat")
	}
	if c.Caveats[0].Location == nil || *c.Caveats[0].Location != "https://discharge.example.com" {
		t.Fatalf("expected third-party location to be set")
	}
}

func TestAttenuateIsIndependent(t *testing.T) {
	original := Mint([]byte("root"), []byte("id"))
	original.AppendFirstParty([]byte("account = alice"))

	clone := original.Attenuate()
	clone.AppendFirstParty([]byte("action = read"))

	if original.CaveatCount() != 1 {
		t.Fatalf("mutating the clone should not affect the original, original has %d caveats", original.CaveatCount())
	}
	if clone.CaveatCount() != 2 {
		t.Fatalf("expected clone to have two caveats, got %d", clone.CaveatCount())
	}
	if original.Signature == clone.Signature {
		t.Fatalf("original and attenuated clone should have diverged")
	}
}

func TestAttenuateDeepCopiesCaveats(t *testing.T) {
	original := Mint([]byte("root"), []byte("id"))
	original.AppendFirstParty([]byte("account = alice"))

	clone := original.Attenuate()
	clone.Caveats[0].CaveatID[0] = 'X'

	if original.Caveats[0].CaveatID[0] == 'X' {
		t.Fatalf("mutating a cloned caveat's bytes should not affect the original")
	}
}

func TestCreateAndBindDischarge(t *testing.T) {
	verificationKey := []byte("shared-verification-key")
	caveatID := []byte("needs-2fa")

	primary := Mint([]byte("root"), []byte("user:alice"))
	primary.AppendThirdParty(caveatID, verificationKey, "https://2fa.example.com")

	discharge := CreateDischarge(verificationKey, caveatID)
	bound := primary.BindDischarge(discharge)

	if bound.Signature == discharge.Signature {
		t.Fatalf("a bound discharge's signature should differ from the unbound discharge's")
	}

	expected := hmacSHA3(discharge.Signature[:], primary.Signature[:])
	if bound.Signature != expected {
		t.Fatalf("bound discharge signature did not follow the HMAC(discharge, primary) rule")
	}
}

func TestPrepareForRequest(t *testing.T) {
	verificationKey := []byte("shared-verification-key")
	caveatID := []byte("needs-2fa")

	primary := Mint([]byte("root"), []byte("user:alice"))
	primary.AppendThirdParty(caveatID, verificationKey, "https://2fa.example.com")
	discharge := CreateDischarge(verificationKey, caveatID)

	bundle := primary.PrepareForRequest([]Credential{discharge})

	if len(bundle) != 2 {
		t.Fatalf("expected primary + one discharge, got %d credentials", len(bundle))
	}
	if bundle[0].Signature != primary.Signature {
		t.Fatalf("expected the first credential in the bundle to be the primary")
	}
	if bundle[1].Signature == discharge.Signature {
		t.Fatalf("expected the bundled discharge to be bound, not the raw discharge")
	}
}
