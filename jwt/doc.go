// Package jwt provides cryptographic verification of credential artifacts at
// protected endpoints (HS256 or Ed25519 signatures, mandatory expiry, leeway,
// optional issuer/audience pinning).
//
// # Architecture boundaries
//
// This package owns token parsing and signature verification. It does NOT
// decide which routes are protected (middleware gate), hold session state
// (SessionStore), or talk to the identity service.
//
// # What this package must NOT do
//
//   - Import authfront or middleware (no upward imports).
//   - Accept a token whose algorithm differs from the configured method.
//   - Treat gate admission as a substitute for verification.
package jwt
