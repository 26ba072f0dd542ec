// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/ui/components"
	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInputArea(),
		m.renderStatusBar(),
	)
	screen := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)

	if m.toasts.HasToasts() {
		toasts := components.RenderToasts(m.deps.Theme, m.toasts.Active(), m.width)
		screen = lipgloss.JoinVertical(lipgloss.Left, screen, toasts)
	}
	return screen
}

func (m Model) renderHeader() string {
	brand := m.deps.Theme.HeaderBrand.Render("Data Mocker")
	user := ""
	if m.identity != nil {
		user = m.deps.Theme.HeaderUser.Render("  " + m.identity.DisplayName())
	}
	return m.deps.Theme.Header.Render(brand + user)
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	theme := m.deps.Theme
	width := m.sidebarWidth
	var b strings.Builder

	heading := "Recent"
	if m.showArchived {
		heading = "Archived"
	}
	b.WriteString(theme.SidebarHeading.Render(heading))
	b.WriteByte('\n')

	sessions := m.visibleSessions()
	if len(sessions) == 0 {
		b.WriteString(theme.SessionMeta.Render("  (empty)"))
		b.WriteByte('\n')
	}
	for i, sess := range sessions {
		label := util.TruncateWidth(sess.Title, width-4)
		style := theme.SessionItem
		if m.focus == focusSidebar && i == m.sidebarIndex {
			style = theme.SessionItemSelected
		} else if sess.ID == m.activeID {
			style = theme.SessionItem.Bold(true)
		}
		b.WriteString(style.Render(label))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(theme.SessionMeta.Render(fmt.Sprintf("%d session(s)", len(sessions))))

	height := m.height - 2
	if height < 3 {
		height = 3
	}
	return theme.Sidebar.Width(width).Height(height).Render(b.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the active session transcript into the
// viewport buffer.
func (m Model) refreshViewport() Model {
	if !m.ready {
		return m
	}
	m.viewport.SetContent(m.renderTranscript())
	return m
}

func (m Model) renderTranscript() string {
	theme := m.deps.Theme
	if m.activeID == "" {
		return theme.DataEmpty.Render(
			"Start a new chat: describe the dataset you need and press enter.")
	}
	sess, err := m.deps.Store.Get(m.activeID)
	if err != nil {
		return theme.DataEmpty.Render("Session not found.")
	}

	var parts []string
	for i, ex := range sess.Exchanges {
		parts = append(parts, theme.PromptBubble.Render(ex.Prompt))
		switch {
		case ex.Generating:
			parts = append(parts, m.thinking.View(theme))
		case len(ex.Data) == 0:
			parts = append(parts, theme.DataEmpty.Render("(no data)"))
		default:
			parts = append(parts, m.renderData(ex.Data))
		}
		if i < len(sess.Exchanges)-1 {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderData(records []*model.Record) string {
	height := len(records) + 1
	if height > 12 {
		height = 12
	}
	t := components.NewRecordTable(m.deps.Theme, records, height)
	body := m.deps.Theme.DataPanel.Render(t.View())
	meta := m.deps.Theme.SessionMeta.Render(fmt.Sprintf("%d record(s)", len(records)))
	return body + "\n" + meta
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInputArea() string {
	theme := m.deps.Theme
	var prefix string
	if m.editing {
		prefix = theme.EditBadge.Render("EDIT") + " "
	}
	return theme.InputContainer.Render(prefix + m.input.View())
}

func (m Model) renderStatusBar() string {
	theme := m.deps.Theme
	pairs := [][2]string{
		{"enter", "generate"},
		{"ctrl+n", "new chat"},
		{"ctrl+e", "edit last"},
		{"ctrl+s", "sessions"},
		{"esc", "cancel"},
		{"/help", "commands"},
	}
	var b strings.Builder
	for i, p := range pairs {
		b.WriteString(theme.ShortcutKey.Render(p[0]))
		b.WriteByte(' ')
		b.WriteString(theme.ShortcutDesc.Render(p[1]))
		if i < len(pairs)-1 {
			b.WriteString("  ")
		}
	}
	return theme.StatusBar.Render(b.String())
}
