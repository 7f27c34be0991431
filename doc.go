// Package stroopwafel implements macaroon-style bearer credentials:
// unforgeable, attenuable authorization tokens built from a chained
// HMAC-SHA3-256 signature (Birgisson et al., NDSS 2014). Mint once,
// append caveats freely, verify by recomputing the chain.
package stroopwafel
