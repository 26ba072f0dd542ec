// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/store"
	"github.com/jeranaias/datamock-tui/internal/title"
	"github.com/jeranaias/datamock-tui/internal/ui/components"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS AREAS
// =============================================================================

// focusArea tracks which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// =============================================================================
// MODEL
// =============================================================================

// Deps bundles the services the dashboard needs. Everything is injected;
// the package holds no globals.
type Deps struct {
	Theme   *styles.Theme
	Config  *config.Config
	Client  *api.Client
	Store   *store.Store
	Flights *store.FlightTable
	Creds   *auth.CredentialStore
	Titler  *title.Synthesizer
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	deps     Deps
	identity *auth.Identity
	token    string

	// Layout
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Components
	viewport viewport.Model
	input    textinput.Model
	thinking components.Thinking
	toasts   *components.ToastManager

	// Session state. activeID empty means a fresh, not-yet-created chat.
	activeID     string
	focus        focusArea
	sidebarIndex int
	showArchived bool

	// Edit-in-place state. When editing, submit regenerates the exchange at
	// editIndex instead of appending, and the previous settled exchange is
	// kept so a failed regeneration can restore it.
	editing   bool
	editIndex int
}

// New builds the dashboard model.
func New(deps Deps, token string, identity *auth.Identity) Model {
	in := textinput.New()
	in.Placeholder = "Describe the data you need, e.g. \"10 users with name and email\""
	in.CharLimit = 2000
	in.Focus()

	sidebarWidth := deps.Config.UI.SidebarWidth

	return Model{
		deps:         deps,
		identity:     identity,
		token:        token,
		sidebarWidth: sidebarWidth,
		input:        in,
		thinking:     components.NewThinking(deps.Theme),
		toasts:       components.NewToastManager(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, components.ToastTickCmd())
}

// visibleSessions returns the sidebar's current list.
func (m *Model) visibleSessions() []*model.Session {
	if m.showArchived {
		return m.deps.Store.Archived()
	}
	return m.deps.Store.Active()
}

func (m *Model) clampSidebarIndex() {
	n := len(m.visibleSessions())
	if m.sidebarIndex >= n {
		m.sidebarIndex = n - 1
	}
	if m.sidebarIndex < 0 {
		m.sidebarIndex = 0
	}
}
