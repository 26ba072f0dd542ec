// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// LogoutMsg tells the parent model to clear credentials and return to the
// sign-in screen.
type LogoutMsg struct{}

// ConfigReloadedMsg delivers a freshly loaded configuration to the running
// program, sent from the config file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// generationDoneMsg carries a finished generation back into the update
// loop. The sequence number identifies which flight produced it; results
// from superseded flights are dropped.
type generationDoneMsg struct {
	sessionID string
	seq       uint64
	index     int
	records   []*model.Record
	err       error

	// replaced holds the exchange that was overwritten when this was an
	// edit-in-place regeneration, so a failure can restore it.
	replaced *model.Exchange
	wasEdit  bool
}

// titleDoneMsg delivers a synthesized session title.
type titleDoneMsg struct {
	sessionID string
	title     string
}

// exportDoneMsg reports the outcome of a background export.
type exportDoneMsg struct {
	path string
	err  error
}
