package stroopwafel

import (
	"github.com/fxamacker/cbor/v2"
)

// wireEncMode produces CBOR with struct fields in their declared
// order and no canonical key sorting. Spec §6 requires the binary
// encoding's top-level map to carry its four keys in the fixed order
// location, identifier, caveats, signature; fxamacker/cbor's
// canonical/"core deterministic" options (the mode
// bureau-foundation-bureau standardizes on) sort map keys, which
// would reorder them, so this repo builds its own EncMode without
// sorting instead of reusing that preset.
var wireEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	// NilContainerAsEmpty: a nil []byte (which is what
	// append(([]byte)(nil), predicate...) produces for a zero-length
	// predicate — legal per spec §3, "caveat_id is arbitrary bytes,
	// length >= 0") must round-trip as an empty byte string, not CBOR
	// null. The default NilContainerAsNull would encode it as null,
	// which toCredential below (correctly) treats as a missing field,
	// spuriously rejecting a legal zero-length caveat.
	opts := cbor.EncOptions{NilContainers: cbor.NilContainerAsEmpty}
	mode, err := opts.EncMode()
	if err != nil {
		panic("stroopwafel: cbor encoder initialization failed: " + err.Error())
	}
	return mode
}

var wireDecMode = mustDecMode()

func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("stroopwafel: cbor decoder initialization failed: " + err.Error())
	}
	return mode
}

// ToBinary encodes c to the self-describing binary wire format: a
// CBOR map with keys location, identifier, caveats, signature in that
// order (spec §4.7/§6). Never fails for a well-formed Credential.
func (c *Credential) ToBinary() ([]byte, error) {
	data, err := wireEncMode.Marshal(c)
	if err != nil {
		return nil, wrapError(KindDeserializationError, "binary encode failed", err)
	}
	return data, nil
}

// FromBinary decodes a credential from the binary wire format
// produced by ToBinary. Structurally invalid bytes fail with
// KindDeserializationError; bytes that parse but violate a structural
// invariant (wrong signature length) fail with KindInvalidFormat.
func FromBinary(data []byte) (Credential, error) {
	var wire wireCredential
	if err := wireDecMode.Unmarshal(data, &wire); err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "binary decode failed", err,
		)
	}
	return wire.toCredential()
}

// wireCredential mirrors Credential but stores Signature as a slice
// so the decoder can detect a wrong-length signature instead of
// silently truncating/panicking on a fixed-size array mismatch.
type wireCredential struct {
	Location   *string  `cbor:"location"`
	Identifier []byte   `cbor:"identifier"`
	Caveats    []Caveat `cbor:"caveats"`
	Signature  []byte   `cbor:"signature"`
}

func (c *Credential) toWire() wireCredential {
	return wireCredential{
		Location:   c.Location,
		Identifier: c.Identifier,
		Caveats:    c.Caveats,
		Signature:  c.Signature[:],
	}
}

func (w wireCredential) toCredential() (Credential, error) {
	if len(w.Signature) != SignatureSize {
		return Credential{}, newError(
			KindInvalidFormat,
			"signature must be 32 bytes",
		)
	}
	for _, caveat := range w.Caveats {
		// wireEncMode never itself emits a null caveat_id (see
		// NilContainerAsEmpty above: a zero-length caveat_id round-trips
		// as an empty byte string, decoding to a non-nil empty slice),
		// so a nil CaveatID here means the wire bytes actually omitted
		// or null'd the field — a genuinely malformed caveat.
		if caveat.CaveatID == nil {
			return Credential{}, newError(
				KindInvalidFormat,
				"caveat missing caveat_id",
			)
		}
	}

	c := Credential{
		Location:   w.Location,
		Identifier: w.Identifier,
		Caveats:    w.Caveats,
	}
	copy(c.Signature[:], w.Signature)
	return c, nil
}

// MarshalCBOR implements cbor.Marshaler by delegating to the wire
// representation, so ToBinary/FromBinary and direct cbor.Marshal
// calls on a Credential produce identical bytes.
func (c Credential) MarshalCBOR() ([]byte, error) {
	return wireEncMode.Marshal(c.toWire())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Credential) UnmarshalCBOR(data []byte) error {
	var wire wireCredential
	if err := wireDecMode.Unmarshal(data, &wire); err != nil {
		return err
	}
	decoded, err := wire.toCredential()
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
