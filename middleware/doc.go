// Package middleware exposes the HTTP admission and verification layers of
// authfront: the presence-only route gate, the cryptographic endpoint guard,
// and the credential-cookie helpers that keep the gate's cookie in lockstep
// with the durable token store.
//
// # Admission gate
//
//   - [Decide] — pure, total admission rule over (path, credential presence).
//   - [Gate] — redirects protected navigations without a credential to the
//     login path, and credentialed visits to the login path back to the
//     protected root, before any protected handler runs.
//
// The gate checks cookie PRESENCE only. It is the cheap first filter of a
// two-tier model and never a substitute for endpoint verification.
//
// # Endpoint guard
//
//   - [Guard] — reads the Authorization bearer artifact, verifies it through
//     a [TokenVerifier], and injects typed claims into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into decisions. It does NOT hold
// session state, call the identity service, or read the durable token store
// — the gate sees only the request cookie.
//
// # What this package must NOT do
//
//   - Decode or validate the cookie value (presence only).
//   - Access Redis or any durable storage.
//   - Make authorization decisions beyond pass/redirect/reject.
package middleware
