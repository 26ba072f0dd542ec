// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the main dashboard: the session sidebar, the
// exchange transcript, and the prompt input.
//
// # Concurrency
//
// All state lives in the single Bubble Tea update loop. Generations run in
// command goroutines; each carries a context and sequence number issued by
// the flight table, and results whose sequence is no longer current are
// dropped on arrival. Starting a generation for a session supersedes any
// generation already in flight for it.
//
// # Slash Commands
//
// The prompt input doubles as a command line. Input starting with "/" is
// dispatched as a command: /new, /temp, /export, /edit, /delex, /delete,
// /archive, /unarchive, /title (or /rename), /sessions, /logout, /help.
package chat
