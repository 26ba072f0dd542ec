// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/extract"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.updateSize(msg), nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case generationDoneMsg:
		return m.updateGenerationDone(msg)

	case titleDoneMsg:
		// Only apply to sessions still carrying the placeholder title, so a
		// manual /title rename always wins over the background synthesis.
		if sess, err := m.deps.Store.Get(msg.sessionID); err == nil && sess.Title == model.DefaultTitle {
			if err := m.deps.Store.SetTitle(msg.sessionID, msg.title); err != nil {
				m.toasts.AddError("Could not save session title.")
			}
		}
		return m.refreshViewport(), nil

	case exportDoneMsg:
		if msg.err != nil {
			m.toasts.AddError("Export failed: " + msg.err.Error())
		} else {
			m.toasts.AddSuccess("Exported to " + msg.path)
		}
		return m, nil

	case ConfigReloadedMsg:
		m.deps.Config = msg.Config
		m.sidebarWidth = msg.Config.UI.SidebarWidth
		if m.width > 0 {
			m = m.updateSize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m.refreshViewport(), nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()
	}

	return m.updateComponents(msg)
}

func (m Model) updateSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	contentWidth := m.width - m.sidebarWidth - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := m.height - 6
	if contentHeight < 5 {
		contentHeight = 5
	}
	if !m.ready {
		m.viewport = newViewport(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}
	m.input.Width = contentWidth - 4
	return m.refreshViewport()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case "esc":
		// Esc cancels an in-flight generation first, then dismisses toasts.
		// Cancellation is silent: the pending exchange settles empty.
		if m.activeID != "" && m.deps.Flights.Cancel(m.activeID) {
			m.thinking.Stop()
			m = m.settlePending(m.activeID)
			return m.refreshViewport(), nil
		}
		if m.editing {
			m.editing = false
			m.input.SetValue("")
			return m, nil
		}
		if m.toasts.HasToasts() {
			m.toasts.DismissNewest()
			return m, nil
		}
		return m, nil

	case "ctrl+n":
		return m.startNewChat(), nil

	case "ctrl+e":
		return m.beginEditLast(), nil
	}

	if m.focus == focusSidebar {
		return m.updateSidebarKey(msg)
	}

	if msg.String() == "enter" {
		return m.submitInput()
	}

	return m.updateComponents(msg)
}

func (m Model) updateSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sessions := m.visibleSessions()
	switch msg.String() {
	case "up", "k":
		if m.sidebarIndex > 0 {
			m.sidebarIndex--
		}
		return m, nil

	case "down", "j":
		if m.sidebarIndex < len(sessions)-1 {
			m.sidebarIndex++
		}
		return m, nil

	case "tab":
		m.showArchived = !m.showArchived
		m.sidebarIndex = 0
		return m, nil

	case "enter":
		if m.sidebarIndex < len(sessions) {
			m.activeID = sessions[m.sidebarIndex].ID
			m.editing = false
			m.focus = focusInput
			m.input.Focus()
			m = m.refreshViewport()
			m.viewport.GotoBottom()
		}
		return m, nil

	case "a":
		if m.sidebarIndex < len(sessions) {
			sess := sessions[m.sidebarIndex]
			if err := m.deps.Store.SetArchived(sess.ID, !sess.Archived); err != nil {
				m.toasts.AddError("Could not update archive state.")
			}
			m.clampSidebarIndex()
		}
		return m, nil

	case "d":
		if m.sidebarIndex < len(sessions) {
			sess := sessions[m.sidebarIndex]
			m.deps.Flights.Cancel(sess.ID)
			if err := m.deps.Store.Remove(sess.ID); err != nil {
				m.toasts.AddError("Could not delete session.")
			}
			if m.activeID == sess.ID {
				m = m.startNewChat()
			}
			m.clampSidebarIndex()
		}
		return m, nil
	}
	return m, nil
}

// =============================================================================
// PROMPT SUBMISSION
// =============================================================================

func (m Model) submitInput() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		return m.runSlashCommand(text)
	}
	m.input.SetValue("")
	if m.editing {
		return m.regenerate(text)
	}
	return m.startGeneration(text)
}

// startGeneration appends a pending exchange (creating the session on the
// first prompt) and launches the pipeline.
func (m Model) startGeneration(prompt string) (Model, tea.Cmd) {
	ex := model.NewExchange(prompt)

	var sessionID string
	var index int
	if m.activeID == "" {
		sess := model.NewSession(ex)
		if err := m.deps.Store.Create(sess); err != nil {
			m.toasts.AddError("Could not save the new session.")
			return m, nil
		}
		sessionID = sess.ID
		index = 0
		m.activeID = sessionID
	} else {
		sess, err := m.deps.Store.Get(m.activeID)
		if err != nil {
			m.toasts.AddError("Session no longer exists.")
			return m.startNewChat(), nil
		}
		if err := m.deps.Store.AppendExchange(sess.ID, ex); err != nil {
			m.toasts.AddError("Could not save the prompt.")
			return m, nil
		}
		sessionID = sess.ID
		index = len(sess.Exchanges) - 1
	}

	ctx, seq := m.deps.Flights.Supersede(sessionID)
	startSpinner := m.thinking.Start()
	m = m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(
		startSpinner,
		m.generateCmd(ctx, sessionID, seq, index, prompt, nil, false),
	)
}

// beginEditLast loads the most recent prompt into the input for editing.
func (m Model) beginEditLast() Model {
	if m.activeID == "" {
		return m
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil || len(sess.Exchanges) == 0 {
		return m
	}
	last := len(sess.Exchanges) - 1
	if sess.Exchanges[last].Generating {
		return m
	}
	m.editing = true
	m.editIndex = last
	m.input.SetValue(sess.Exchanges[last].Prompt)
	m.input.CursorEnd()
	m.focus = focusInput
	m.input.Focus()
	return m
}

// regenerate replaces the edited exchange with a pending one, remembering
// the settled exchange so a failure can put it back.
func (m Model) regenerate(prompt string) (Model, tea.Cmd) {
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil || m.editIndex >= len(sess.Exchanges) {
		m.editing = false
		return m, nil
	}
	previous := sess.Exchanges[m.editIndex]
	pending := model.NewExchange(prompt)
	if err := m.deps.Store.ReplaceExchange(m.activeID, m.editIndex, pending); err != nil {
		m.toasts.AddError("Could not start regeneration.")
		return m, nil
	}
	m.editing = false

	ctx, seq := m.deps.Flights.Supersede(m.activeID)
	startSpinner := m.thinking.Start()
	m = m.refreshViewport()
	return m, tea.Batch(
		startSpinner,
		m.generateCmd(ctx, m.activeID, seq, m.editIndex, prompt, &previous, true),
	)
}

// =============================================================================
// GENERATION RESULTS
// =============================================================================

func (m Model) updateGenerationDone(msg generationDoneMsg) (Model, tea.Cmd) {
	// A stale flight's result is dropped wholesale; the session may have
	// been superseded, cancelled, or deleted since it launched.
	if !m.deps.Flights.Settle(msg.sessionID, msg.seq) {
		return m, nil
	}
	m.thinking.Stop()

	if msg.err != nil {
		return m.handleGenerationFailure(msg)
	}

	if err := m.deps.Store.SettleExchange(msg.sessionID, msg.index, msg.records); err != nil {
		m.toasts.AddError("Could not save the generated data.")
		return m.refreshViewport(), nil
	}

	var cmds []tea.Cmd
	sess, err := m.deps.Store.Get(msg.sessionID)
	if err == nil && sess.Title == model.DefaultTitle {
		prompt := sess.Exchanges[0].Prompt
		cmds = append(cmds, m.titleCmd(msg.sessionID, prompt, msg.records))
	}

	m = m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(cmds...)
}

func (m Model) handleGenerationFailure(msg generationDoneMsg) (Model, tea.Cmd) {
	if api.IsCancelled(msg.err) {
		// Cancellation is never surfaced as a failure.
		_ = m.deps.Store.SettleExchange(msg.sessionID, msg.index, nil)
		return m.refreshViewport(), nil
	}

	if errors.Is(msg.err, extract.ErrNoData) {
		m.toasts.AddError("No structured data produced. Try rephrasing the prompt.")
	} else {
		m.toasts.AddError(api.UserMessage(msg.err))
	}

	if msg.wasEdit && msg.replaced != nil {
		// Put the last good exchange back so edits never destroy data.
		if err := m.deps.Store.ReplaceExchange(msg.sessionID, msg.index, *msg.replaced); err != nil {
			m.toasts.AddError("Could not restore the previous data.")
		}
		return m.refreshViewport(), nil
	}

	// A failed exchange stays in the transcript, settled with empty data.
	if err := m.deps.Store.SettleExchange(msg.sessionID, msg.index, nil); err != nil {
		m.toasts.AddError("Could not update the session.")
	}
	return m.refreshViewport(), nil
}

// =============================================================================
// COMPONENT ROUTING
// =============================================================================

func (m Model) updateComponents(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd := m.thinking.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) startNewChat() Model {
	m.activeID = ""
	m.editing = false
	m.focus = focusInput
	m.input.Focus()
	m.input.SetValue("")
	return m.refreshViewport()
}

// settlePending settles any still-generating exchange in the session with
// empty data, used after a cancellation whose result will never arrive.
func (m Model) settlePending(sessionID string) Model {
	sess, err := m.deps.Store.Get(sessionID)
	if err != nil {
		return m
	}
	for i, ex := range sess.Exchanges {
		if ex.Generating {
			_ = m.deps.Store.SettleExchange(sessionID, i, nil)
		}
	}
	return m
}
