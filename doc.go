// Package authfront provides the session-authentication core for a web
// front-end: a stateful [SessionStore] that owns the tri-state authentication
// status and the credential artifact lifecycle, an HTTP [IdentityClient] for
// the external identity service, and Redis-backed durable token storage.
//
// The package is designed for concurrent server workloads: SessionStore
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build], and overlapping verification calls are collapsed
// into a single outstanding identity-service request.
//
// # Architecture boundaries
//
// authfront is the public surface. It exposes [SessionStore], [Builder],
// [Config], and value types (Snapshot, Profile, LoginResult, MetricsSnapshot).
// Route admission and endpoint verification live in the middleware and jwt
// sub-packages; audit buffering lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or wire-format details in its
//     public API.
//   - Decode or verify credential artifacts itself — artifact validity is the
//     identity service's verdict (SessionStore) or the jwt package's verdict
//     (endpoint guard), never this package's.
//   - Perform I/O outside of SessionStore methods (construction via Builder
//     is allocation-only until Build).
//
// # Admission vs. authorization
//
// The middleware gate admits or redirects navigations on credential presence
// alone. Gate admission is never authorization: every protected endpoint must
// independently verify the artifact (middleware.Guard) or re-derive the
// session through SessionStore.
package authfront
