package stroopwafel

import (
	"encoding/hex"
	"encoding/json"
)

// jsonCaveat mirrors Caveat for JSON, hex-encoding its byte fields per
// spec §4.7 ("byte fields are hex-encoded strings").
type jsonCaveat struct {
	CaveatID          string  `json:"caveat_id"`
	VerificationKeyID *string `json:"verification_key_id,omitempty"`
	Location          *string `json:"location,omitempty"`
}

func (c Caveat) toJSON() jsonCaveat {
	jc := jsonCaveat{
		CaveatID: hex.EncodeToString(c.CaveatID),
		Location: c.Location,
	}
	if c.VerificationKeyID != nil {
		vk := hex.EncodeToString(c.VerificationKeyID)
		jc.VerificationKeyID = &vk
	}
	return jc
}

func (jc jsonCaveat) toCaveat() (Caveat, error) {
	caveatID, err := hex.DecodeString(jc.CaveatID)
	if err != nil {
		return Caveat{}, wrapError(
			KindDeserializationError, "caveat_id is not valid hex", err,
		)
	}

	c := Caveat{CaveatID: caveatID, Location: jc.Location}
	if jc.VerificationKeyID != nil {
		vk, err := hex.DecodeString(*jc.VerificationKeyID)
		if err != nil {
			return Caveat{}, wrapError(
				KindDeserializationError,
				"verification_key_id is not valid hex",
				err,
			)
		}
		c.VerificationKeyID = vk
	}
	return c, nil
}

// jsonCredential mirrors Credential for JSON.
type jsonCredential struct {
	Location   *string      `json:"location"`
	Identifier string       `json:"identifier"`
	Caveats    []jsonCaveat `json:"caveats"`
	Signature  string       `json:"signature"`
}

func (c *Credential) toJSON() jsonCredential {
	jcs := make([]jsonCaveat, len(c.Caveats))
	for i, caveat := range c.Caveats {
		jcs[i] = caveat.toJSON()
	}
	return jsonCredential{
		Location:   c.Location,
		Identifier: hex.EncodeToString(c.Identifier),
		Caveats:    jcs,
		Signature:  hex.EncodeToString(c.Signature[:]),
	}
}

func (jc jsonCredential) toCredential() (Credential, error) {
	sig, err := hex.DecodeString(jc.Signature)
	if err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "signature is not valid hex", err,
		)
	}
	if len(sig) != SignatureSize {
		return Credential{}, newError(
			KindInvalidFormat, "signature must be 32 bytes",
		)
	}

	identifier, err := hex.DecodeString(jc.Identifier)
	if err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "identifier is not valid hex", err,
		)
	}

	caveats := make([]Caveat, len(jc.Caveats))
	for i, jcv := range jc.Caveats {
		caveat, err := jcv.toCaveat()
		if err != nil {
			return Credential{}, err
		}
		caveats[i] = caveat
	}

	c := Credential{
		Location:   jc.Location,
		Identifier: identifier,
		Caveats:    caveats,
	}
	copy(c.Signature[:], sig)
	return c, nil
}

// ToJSON serializes c to JSON. Byte fields (identifier, caveat_id,
// verification_key_id, signature) are hex-encoded strings.
func (c *Credential) ToJSON() (string, error) {
	data, err := json.Marshal(c.toJSON())
	if err != nil {
		return "", wrapError(KindDeserializationError, "json encode failed", err)
	}
	return string(data), nil
}

// ToJSONPretty serializes c to indented JSON.
func (c *Credential) ToJSONPretty() (string, error) {
	data, err := json.MarshalIndent(c.toJSON(), "", "  ")
	if err != nil {
		return "", wrapError(KindDeserializationError, "json encode failed", err)
	}
	return string(data), nil
}

// FromJSON deserializes a credential from JSON produced by ToJSON or
// ToJSONPretty.
func FromJSON(s string) (Credential, error) {
	var jc jsonCredential
	if err := json.Unmarshal([]byte(s), &jc); err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "json decode failed", err,
		)
	}
	return jc.toCredential()
}
