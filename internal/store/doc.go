// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store manages chat sessions and their persistence.
//
// # Key Types
//
//   - Store: the in-memory session collection. Every mutation persists the
//     durable subset synchronously before returning, so a crash can never
//     lose an acknowledged change.
//   - KV: a single-value persistence slot. FileKV keeps the sessions as one
//     JSON document on disk; SQLiteKV keeps the same document in a SQLite
//     database for installations that prefer a single queryable file.
//   - FlightTable: tracks the in-flight generation per session and hands
//     out contexts so that starting a new generation cancels the old one.
//
// Sessions marked Transient are fully functional in memory but excluded
// from the persisted document. When the durable subset becomes empty the
// slot is deleted rather than written as "[]", so a fresh profile and a
// cleaned-out one look identical on disk.
package store
