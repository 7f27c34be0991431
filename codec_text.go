package stroopwafel

import (
	"encoding/base64"
	"encoding/hex"
)

// base64Encoding is URL-safe base64 without padding, as spec §4.7/§6
// requires for the base64 wire representation (suitable for HTTP
// headers, which is the whole point of not padding).
var base64Encoding = base64.RawURLEncoding

// ToBase64 encodes c as URL-safe, unpadded base64 over its binary
// encoding.
func (c *Credential) ToBase64() (string, error) {
	data, err := c.ToBinary()
	if err != nil {
		return "", err
	}
	return base64Encoding.EncodeToString(data), nil
}

// FromBase64 decodes a credential previously produced by ToBase64.
func FromBase64(s string) (Credential, error) {
	data, err := base64Encoding.DecodeString(s)
	if err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "base64 decode failed", err,
		)
	}
	return FromBinary(data)
}

// ToHex encodes c as lowercase hex over its binary encoding.
func (c *Credential) ToHex() (string, error) {
	data, err := c.ToBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// FromHex decodes a credential previously produced by ToHex.
func FromHex(s string) (Credential, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Credential{}, wrapError(
			KindDeserializationError, "hex decode failed", err,
		)
	}
	return FromBinary(data)
}
