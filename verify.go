package stroopwafel

import "bytes"

// Verify checks c against rootKey, verifier, and any discharge
// credentials supplied for third-party caveats (as produced by
// PrepareForRequest on the issuing side).
//
// Steps, in order (spec §4.6): recompute the chain and constant-time
// compare it against c.Signature; only if that matches does any
// caveat get evaluated, so a tampered credential never exposes the
// verifier to attacker-controlled predicates it would otherwise
// evaluate. Caveats are then checked in append order: first-party
// caveats go to verifier, third-party caveats are discharged against
// a matching entry in discharges or fail with
// KindUnsupportedThirdParty.
func (c *Credential) Verify(rootKey []byte, verifier Verifier, discharges []Credential) error {
	expected := rechain(rootKey, c.Identifier, c.Caveats)
	if !constantTimeEqual(expected[:], c.Signature[:]) {
		log.Warnf("stroopwafel: signature mismatch for identifier %x",
			c.Identifier)
		return ErrInvalidSignature
	}

	for i, caveat := range c.Caveats {
		if caveat.IsFirstParty() {
			if err := verifier.VerifyCaveat(caveat.CaveatID); err != nil {
				log.Debugf("stroopwafel: caveat %d rejected: %v", i, err)
				return newCaveatViolation(i, caveat.CaveatID, err)
			}
			continue
		}

		if err := c.verifyThirdParty(caveat, discharges, verifier); err != nil {
			log.Debugf("stroopwafel: third-party caveat %d rejected: %v",
				i, err)
			return err
		}
	}

	return nil
}

// verifyThirdParty discharges a single third-party caveat: it looks
// for a credential in discharges whose Identifier equals the
// caveat's CaveatID, rebuilds that discharge's own chain under the
// caveat's VerificationKeyID bound to c.Signature (the same binding
// BindDischarge produces), and — only if that checks out — verifies
// the discharge's own first-party caveats against verifier.
//
// A caveat with no matching discharge, or a discharge whose bound
// signature doesn't check out, fails with KindUnsupportedThirdParty:
// this package does not implement the encrypted-key-exchange half of
// the third-party protocol (spec §1 Non-goals), so a third-party
// caveat can only be satisfied when the caller has already obtained
// and attached the matching discharge out of band.
func (c *Credential) verifyThirdParty(caveat Caveat, discharges []Credential, verifier Verifier) error {
	if caveat.VerificationKeyID == nil {
		return newError(
			KindUnsupportedThirdParty,
			"third-party caveat missing verification key",
		)
	}

	for _, discharge := range discharges {
		if !bytes.Equal(discharge.Identifier, caveat.CaveatID) {
			continue
		}

		expectedChain := rechain(
			caveat.VerificationKeyID, discharge.Identifier, discharge.Caveats,
		)
		expectedBound := hmacSHA3(expectedChain[:], c.Signature[:])
		if !constantTimeEqual(expectedBound[:], discharge.Signature[:]) {
			continue
		}

		for _, inner := range discharge.Caveats {
			if !inner.IsFirstParty() {
				continue
			}
			if err := verifier.VerifyCaveat(inner.CaveatID); err != nil {
				return err
			}
		}
		return nil
	}

	return newError(
		KindUnsupportedThirdParty,
		"no valid discharge for caveat "+quote(string(caveat.CaveatID)),
	)
}
