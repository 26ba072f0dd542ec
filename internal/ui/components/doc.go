// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the datamock TUI.
//
// # Key Types
//
//   - ToastManager: non-blocking corner notifications that auto-dismiss,
//     used for soft failures like "No structured data produced"
//   - RecordTable: renders a generated record set as a scrollable table
//   - Thinking: the spinner row shown while a generation is in flight
package components
