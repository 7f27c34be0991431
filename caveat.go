package stroopwafel

// Caveat is a single restriction attached to a credential. A caveat
// is first-party when VerificationKeyID is nil, and third-party
// otherwise; Location does not affect which kind it is.
type Caveat struct {
	// CaveatID is the predicate (first-party) or the identifier a
	// discharge credential must carry (third-party). Arbitrary bytes,
	// length >= 0.
	CaveatID []byte `cbor:"caveat_id"`

	// VerificationKeyID is present iff this is a third-party caveat.
	// Conventionally the verification key encrypted under the
	// credential's current signature; key encryption itself is
	// outside this package's scope, so callers pass the key material
	// a discharging party should use directly.
	VerificationKeyID []byte `cbor:"verification_key_id,omitempty"`

	// Location is an optional hint naming the discharging service,
	// set only on third-party caveats.
	Location *string `cbor:"location,omitempty"`
}

// firstPartyCaveat builds a first-party caveat.
func firstPartyCaveat(predicate []byte) Caveat {
	return Caveat{CaveatID: predicate}
}

// thirdPartyCaveat builds a third-party caveat.
func thirdPartyCaveat(caveatID, verificationKeyID []byte, location string) Caveat {
	return Caveat{
		CaveatID:          caveatID,
		VerificationKeyID: verificationKeyID,
		Location:          &location,
	}
}

// IsFirstParty reports whether this is a first-party caveat.
func (c Caveat) IsFirstParty() bool {
	return c.VerificationKeyID == nil
}

// IsThirdParty reports whether this is a third-party caveat.
func (c Caveat) IsThirdParty() bool {
	return !c.IsFirstParty()
}

// binding returns the bytes folded into the signature chain for this
// caveat (spec §4.2): caveat_id for a first-party caveat, and
// verification_key_id ∥ caveat_id (plain concatenation, no separator,
// no length prefix) for a third-party caveat.
func (c Caveat) binding() []byte {
	if c.IsFirstParty() {
		return c.CaveatID
	}

	bound := make([]byte, 0, len(c.VerificationKeyID)+len(c.CaveatID))
	bound = append(bound, c.VerificationKeyID...)
	bound = append(bound, c.CaveatID...)
	return bound
}

// clone returns a deep copy of this caveat.
func (c Caveat) clone() Caveat {
	cp := Caveat{CaveatID: append([]byte(nil), c.CaveatID...)}
	if c.VerificationKeyID != nil {
		cp.VerificationKeyID = append([]byte(nil), c.VerificationKeyID...)
	}
	if c.Location != nil {
		loc := *c.Location
		cp.Location = &loc
	}
	return cp
}
