// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/export"
	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// runSlashCommand dispatches input that started with "/".
func (m Model) runSlashCommand(text string) (Model, tea.Cmd) {
	parts := strings.Fields(text)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/new":
		return m.startNewChat(), nil

	case "/export":
		return m.cmdExport(args)

	case "/delete":
		return m.cmdDeleteSession(), nil

	case "/delex":
		return m.cmdDeleteExchange(), nil

	case "/edit":
		return m.beginEditLast(), nil

	case "/temp":
		return m.cmdTemp(), nil

	case "/archive":
		return m.cmdArchive(true), nil

	case "/unarchive":
		return m.cmdArchive(false), nil

	case "/title", "/rename":
		return m.cmdTitle(args), nil

	case "/sessions":
		m.focus = focusSidebar
		return m, nil

	case "/logout":
		m.deps.Flights.CancelAll()
		for _, sess := range m.deps.Store.List() {
			m = m.settlePending(sess.ID)
		}
		return m, func() tea.Msg { return LogoutMsg{} }

	case "/help":
		m.toasts.AddInfo("Commands: /new /temp /export [csv|json] /edit /delex /delete /archive /unarchive /title <name> /sessions /logout")
		return m, nil

	default:
		m.toasts.AddError("Unknown command: " + cmd)
		return m, nil
	}
}

// cmdExport writes the latest settled exchange's records to a file.
func (m Model) cmdExport(args []string) (Model, tea.Cmd) {
	records, sess := m.latestRecords()
	if len(records) == 0 {
		m.toasts.AddError("Nothing to export yet.")
		return m, nil
	}

	var exporter export.Exporter = export.NewCSVExporter()
	if len(args) > 0 && strings.ToLower(args[0]) == "json" {
		exporter = export.NewJSONExporter()
	}
	return m, m.exportCmd(records, exporter, sess.Title)
}

// latestRecords finds the newest settled, non-empty exchange in the active
// session.
func (m Model) latestRecords() ([]*model.Record, *model.Session) {
	if m.activeID == "" {
		return nil, nil
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil {
		return nil, nil
	}
	for i := len(sess.Exchanges) - 1; i >= 0; i-- {
		ex := sess.Exchanges[i]
		if !ex.Generating && len(ex.Data) > 0 {
			return ex.Data, sess
		}
	}
	return nil, sess
}

// cmdDeleteSession removes the active session entirely.
func (m Model) cmdDeleteSession() Model {
	if m.activeID == "" {
		m.toasts.AddError("No active session.")
		return m
	}
	m.deps.Flights.Cancel(m.activeID)
	if err := m.deps.Store.Remove(m.activeID); err != nil {
		m.toasts.AddError("Could not delete the session.")
		return m
	}
	m.toasts.AddSuccess("Session deleted.")
	return m.startNewChat()
}

// cmdTemp toggles the active session's transient flag. Transient sessions
// live only for this run and never reach persistence.
func (m Model) cmdTemp() Model {
	if m.activeID == "" {
		m.toasts.AddError("No active session.")
		return m
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil {
		m.toasts.AddError("No active session.")
		return m
	}
	next := !sess.Transient
	if err := m.deps.Store.SetTransient(m.activeID, next); err != nil {
		m.toasts.AddError("Could not update the session.")
		return m
	}
	if next {
		m.toasts.AddInfo("Session is now temporary and will not be saved.")
	} else {
		m.toasts.AddInfo("Session will be saved.")
	}
	return m
}

// cmdDeleteExchange removes the most recent exchange from the active
// session.
func (m Model) cmdDeleteExchange() Model {
	if m.activeID == "" {
		m.toasts.AddError("No active session.")
		return m
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil || len(sess.Exchanges) == 0 {
		m.toasts.AddError("Nothing to delete.")
		return m
	}
	last := len(sess.Exchanges) - 1
	if sess.Exchanges[last].Generating {
		m.deps.Flights.Cancel(m.activeID)
	}
	if err := m.deps.Store.RemoveExchange(m.activeID, last); err != nil {
		m.toasts.AddError("Could not delete the exchange.")
		return m
	}
	if _, err := m.deps.Store.Get(m.activeID); err != nil {
		// The session went with its last exchange.
		m = m.startNewChat()
	}
	return m.refreshViewport()
}

func (m Model) cmdArchive(archived bool) Model {
	if m.activeID == "" {
		m.toasts.AddError("No active session.")
		return m
	}
	if err := m.deps.Store.SetArchived(m.activeID, archived); err != nil {
		m.toasts.AddError("Could not update archive state.")
		return m
	}
	if archived {
		m.toasts.AddSuccess("Session archived.")
		m = m.startNewChat()
	} else {
		m.toasts.AddSuccess("Session restored.")
	}
	return m
}

func (m Model) cmdTitle(args []string) Model {
	if m.activeID == "" {
		m.toasts.AddError("No active session.")
		return m
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		m.toasts.AddError("Usage: /title <new name>")
		return m
	}
	if err := m.deps.Store.SetTitle(m.activeID, name); err != nil {
		m.toasts.AddError("Could not rename the session.")
	}
	return m.refreshViewport()
}
