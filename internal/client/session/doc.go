// Package session is the durable session store of the Sportera client.
//
// # Overview
//
// The package provides:
//  1. A raw key/value contract (Repository) with an SQLite implementation
//     backed by a single table; a missing key yields "absent", not an error.
//  2. A typed layer (Store) exposing the session state the rest of the
//     client works with: access token, remember-me flag, cached user,
//     pending-verification email, and the forgot-password context.
//  3. Bootstrap helpers (InitDatabase, RunMigrations) wiring an SQLite
//     database and applying embedded goose migrations.
//
// # Invariants
//
// remember_me is only ever true while a token is stored: ClearToken removes
// both keys in one transaction and SaveRememberMe(true) fails with
// ErrNoToken when no token exists. The forgot-password email/code pair is
// written and cleared atomically.
//
// # Concurrency
//
// Store is safe for concurrent use: every write is a single-key upsert or a
// short transaction, and SQLite serializes writers on the same key. Readers
// see the last committed write (last-write-wins across flows).
package session
