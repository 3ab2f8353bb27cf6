// Package api contains the HTTP access layer for the Sportera backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     every auth endpoint plus user lookup by id.
//  2. A concrete HTTP implementation (see HTTPClient) whose transport is a
//     fixed chain of stages: diagnostic logging, retry with exponential
//     backoff, and bearer-token injection from a TokenSource, in that
//     order from the outside in. Auth injection runs closest to the wire
//     so retried attempts always carry the freshest token.
//
// # Retry Behavior
//
// Transport-level I/O failures are retried up to 3 attempts with delays of
// 2s then 4s. Host-resolution failures and cancellation fail immediately.
// Any HTTP response, including 4xx and 5xx, ends the retry loop: statuses
// are data, not failures, at this layer.
//
// # Error Handling
//
// Raw conditions propagate untranslated: non-2xx statuses as *StatusError,
// wire failures as the underlying net errors, malformed success bodies as
// wrapped json errors. The apperrors package is the sole place these become
// user-facing messages.
//
// # Thread Safety
//
// HTTPClient is safe for concurrent use; the underlying connection pool is
// shared across all calls.
package api
