// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import "github.com/jeranaias/datamock-tui/internal/auth"

// =============================================================================
// MESSAGES
// =============================================================================

// AuthenticatedMsg is emitted to the parent model after a successful login.
type AuthenticatedMsg struct {
	Token    string
	Identity *auth.Identity
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	token string
	err   error
}

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	err error
}

// checkField names a probe-able form field.
type checkField int

const (
	checkUsername checkField = iota
	checkEmail
)

// debounceElapsedMsg fires when the availability debounce window closes.
// The probe only runs if seq still matches the field's current sequence,
// so further typing inside the window cancels it.
type debounceElapsedMsg struct {
	field checkField
	seq   int
}

// availabilityMsg carries a probe result. Stale sequences are dropped.
type availabilityMsg struct {
	field  checkField
	seq    int
	exists bool
	err    error
}
