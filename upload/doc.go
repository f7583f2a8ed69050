// Package upload is a stateless helper that posts a file plus a fixed preset
// identifier to a third-party media-storage HTTP endpoint and returns the
// resulting secure URL.
//
// # What this package must NOT do
//
//   - Retry, chunk, or report progress (the contract is one shot).
//   - Touch session state or credential artifacts.
package upload
