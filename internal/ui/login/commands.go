// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
)

// =============================================================================
// COMMANDS
// =============================================================================

// debounceWindow is how long typing must pause before an availability probe
// fires. Matches the feel of the web client.
const debounceWindow = 500 * time.Millisecond

func debounceCmd(field checkField, seq int) tea.Cmd {
	return tea.Tick(debounceWindow, func(time.Time) tea.Msg {
		return debounceElapsedMsg{field: field, seq: seq}
	})
}

func (m Model) checkAvailabilityCmd(field checkField, value string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var exists bool
		var err error
		if field == checkUsername {
			exists, err = m.client.CheckUsername(ctx, value)
		} else {
			exists, err = m.client.CheckEmail(ctx, value)
		}
		return availabilityMsg{field: field, seq: seq, exists: exists, err: err}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		token, err := m.client.Login(ctx, email, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m Model) registerCmd(req api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		return registerResultMsg{err: m.client.Register(ctx, req)}
	}
}
