package stroopwafel

// Credential is a bearer token: an append-only sequence of caveats
// bound into a chained HMAC-SHA3-256 signature. Holders may attenuate
// a credential by appending caveats without contacting the issuer;
// doing so can only narrow, never widen, what a verifier will accept.
//
// The root key that seeded a credential's signature is never stored
// on the credential itself and is never transmitted with it.
// Credential's wire shape (field order, optionality) is defined by
// wireCredential in codec_binary.go and jsonCredential in
// codec_json.go; MarshalCBOR/UnmarshalCBOR route all encoding through
// those, so this struct itself carries no serialization tags.
type Credential struct {
	// Location is an optional hint naming the intended verifying
	// service.
	Location *string

	// Identifier names this credential. Arbitrary bytes.
	Identifier []byte

	// Caveats is the ordered sequence of restrictions folded into
	// Signature. Order is part of the signed value: reordering
	// invalidates Signature.
	Caveats []Caveat

	// Signature is the current chain signature, 32 bytes.
	Signature Signature
}

// MintOption configures a credential at mint time. Modeled on lnd's
// macaroons.Constraint: a function that tightens/configures a
// credential, composed by applying each in turn.
type MintOption func(*Credential)

// WithLocation sets the location hint on a newly minted credential.
func WithLocation(location string) MintOption {
	return func(c *Credential) {
		c.Location = &location
	}
}

// Mint creates a new credential. The signature is seeded from rootKey
// and identifier; the caveat sequence starts empty. Never fails on
// well-formed inputs.
func Mint(rootKey, identifier []byte, opts ...MintOption) Credential {
	c := Credential{
		Identifier: append([]byte(nil), identifier...),
		Caveats:    nil,
		Signature:  seed(rootKey, identifier),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// AppendFirstParty appends a first-party caveat, updating Signature
// to step(Signature, predicate). O(1) in credential size; never
// fails.
func (c *Credential) AppendFirstParty(predicate []byte) {
	caveat := firstPartyCaveat(append([]byte(nil), predicate...))
	c.Signature = step(c.Signature, caveat.binding())
	c.Caveats = append(c.Caveats, caveat)
}

// AppendThirdParty appends a third-party caveat. Signature is updated
// under the binding rule of spec §4.2 (verificationKeyID ∥ caveatID).
func (c *Credential) AppendThirdParty(caveatID, verificationKeyID []byte, location string) {
	caveat := thirdPartyCaveat(
		append([]byte(nil), caveatID...),
		append([]byte(nil), verificationKeyID...),
		location,
	)
	c.Signature = step(c.Signature, caveat.binding())
	c.Caveats = append(c.Caveats, caveat)
}

// CaveatCount returns the number of caveats on this credential.
func (c *Credential) CaveatCount() int {
	return len(c.Caveats)
}

// IsUnrestricted reports whether this credential has no caveats.
func (c *Credential) IsUnrestricted() bool {
	return len(c.Caveats) == 0
}

// Attenuate returns an independent clone of c. Mutating the clone
// (via AppendFirstParty/AppendThirdParty) never affects c, since
// append operations mutate in place and cloning is by value at the
// attenuation point rather than via any shared interior state.
func (c *Credential) Attenuate() Credential {
	clone := Credential{
		Identifier: append([]byte(nil), c.Identifier...),
		Caveats:    make([]Caveat, len(c.Caveats)),
		Signature:  c.Signature,
	}
	if c.Location != nil {
		loc := *c.Location
		clone.Location = &loc
	}
	for i, caveat := range c.Caveats {
		clone.Caveats[i] = caveat.clone()
	}
	return clone
}

// rechain recomputes the expected signature for this credential's
// identifier and caveat sequence under key, folding each caveat's
// binding in order (spec §4.2's fold). It does not compare against
// the stored Signature; callers do that with constantTimeEqual.
func rechain(key, identifier []byte, caveats []Caveat) Signature {
	sig := seed(key, identifier)
	for _, caveat := range caveats {
		sig = step(sig, caveat.binding())
	}
	return sig
}

// CreateDischarge mints a discharge credential for a third-party
// caveat. The discharging service calls this with the shared
// verification key and the caveat's identifier once it has satisfied
// itself that the caveat's condition holds locally.
func CreateDischarge(verificationKey, caveatID []byte, opts ...MintOption) Credential {
	return Mint(verificationKey, caveatID, opts...)
}

// BindDischarge binds a discharge credential to this (the primary)
// credential's current signature, producing a new discharge whose
// signature can only be validated alongside this exact primary:
// bound_sig = HMAC(discharge.Signature, primary.Signature). This
// prevents a discharge from being replayed against a different
// primary credential.
func (c *Credential) BindDischarge(discharge Credential) Credential {
	bound := discharge.Attenuate()
	bound.Signature = hmacSHA3(discharge.Signature[:], c.Signature[:])
	return bound
}

// PrepareForRequest returns c followed by each of discharges bound to
// c, ready to present together to a verifier.
func (c *Credential) PrepareForRequest(discharges []Credential) []Credential {
	prepared := make([]Credential, 0, len(discharges)+1)
	prepared = append(prepared, *c)
	for _, discharge := range discharges {
		prepared = append(prepared, c.BindDischarge(discharge))
	}
	return prepared
}
