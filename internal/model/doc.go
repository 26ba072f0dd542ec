// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions and
// generated records.
//
// This package defines the core domain types used throughout the
// application for representing sessions, prompt/data exchanges, and the
// rows produced by the generation backend.
//
// # Key Types
//
//   - Session: a named, ordered collection of exchanges; the unit of
//     persistence and archival
//   - Exchange: one prompt/data pair within a session
//   - Record: one generated row, an ordered field-name to value mapping
//
// Rows are heterogeneous: different records in the same exchange may carry
// different keys, and consumers must tolerate missing fields per row.
package model
