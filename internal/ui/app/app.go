// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model. It routes between the landing
// screen, the authentication forms, and the dashboard, and owns the
// transition between them.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/store"
	"github.com/jeranaias/datamock-tui/internal/title"
	"github.com/jeranaias/datamock-tui/internal/ui/chat"
	"github.com/jeranaias/datamock-tui/internal/ui/login"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// SCREENS
// =============================================================================

type screen int

const (
	screenLanding screen = iota
	screenLogin
	screenChat
)

// =============================================================================
// MODEL
// =============================================================================

// Deps bundles the services the application needs.
type Deps struct {
	Theme   *styles.Theme
	Config  *config.Config
	Client  *api.Client
	Store   *store.Store
	Flights *store.FlightTable
	Creds   *auth.CredentialStore
}

// Model is the root application model.
type Model struct {
	deps   Deps
	screen screen

	login login.Model
	chat  chat.Model

	width  int
	height int
}

// New builds the root model. A stored, decodable token skips the landing
// and sign-in screens entirely.
func New(deps Deps) Model {
	m := Model{
		deps:   deps,
		screen: screenLanding,
		login:  login.New(deps.Theme, deps.Client, deps.Creds),
	}
	if token, ok := deps.Creds.Token(); ok {
		if identity := auth.DecodeIdentity(token); identity != nil {
			m.enterChat(token, identity)
		}
	}
	return m
}

// enterChat builds the dashboard for an authenticated user.
func (m *Model) enterChat(token string, identity *auth.Identity) {
	titler := title.NewSynthesizer(&namerAdapter{client: m.deps.Client, token: token})
	m.chat = chat.New(chat.Deps{
		Theme:   m.deps.Theme,
		Config:  m.deps.Config,
		Client:  m.deps.Client,
		Store:   m.deps.Store,
		Flights: m.deps.Flights,
		Creds:   m.deps.Creds,
		Titler:  titler,
	}, token, identity)
	m.screen = screenChat
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	switch m.screen {
	case screenChat:
		return m.chat.Init()
	case screenLogin:
		return m.login.Init()
	}
	return nil
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.deps.Flights.CancelAll()
			return m, tea.Quit
		}

	case login.AuthenticatedMsg:
		m.enterChat(msg.Token, msg.Identity)
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, tea.Batch(m.chat.Init(), cmd)

	case chat.ConfigReloadedMsg:
		m.deps.Config = msg.Config
		// The screen router below forwards the message so the dashboard
		// can re-layout.

	case chat.LogoutMsg:
		m.deps.Flights.CancelAll()
		_ = m.deps.Creds.ClearToken()
		m.login = login.New(m.deps.Theme, m.deps.Client, m.deps.Creds)
		m.screen = screenLogin
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, tea.Batch(m.login.Init(), cmd)
	}

	switch m.screen {
	case screenLanding:
		return m.updateLanding(msg)
	case screenLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
}

func (m Model) updateLanding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			m.screen = screenLogin
			var cmd tea.Cmd
			m.login, cmd = m.login.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			return m, tea.Batch(m.login.Init(), cmd)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	switch m.screen {
	case screenLanding:
		return m.viewLanding()
	case screenLogin:
		return m.login.View()
	default:
		return m.chat.View()
	}
}

func (m Model) viewLanding() string {
	theme := m.deps.Theme
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.HeaderBrand.Render("Data Mocker"),
		theme.FormHint.Render("AI-generated tabular test data, in your terminal"),
		"",
		theme.FormLabel.Render("press enter to sign in · q to quit"),
	)
	box := theme.FormBox.Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// =============================================================================
// TITLE NAMER ADAPTER
// =============================================================================

// namerAdapter binds the API client and bearer token to the title
// synthesizer's Namer interface.
type namerAdapter struct {
	client *api.Client
	token  string
}

func (n *namerAdapter) GenerateTitle(ctx context.Context, prompt string, sample []*model.Record) (string, error) {
	return n.client.GenerateTitle(ctx, n.token, prompt, sample)
}
