// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the authentication screens: sign-in and
// registration, with live username and email availability checks.
package login

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// MODES AND FIELD INDICES
// =============================================================================

// Mode selects which form is showing.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Login form field order.
const (
	loginEmail = iota
	loginPassword
	loginFieldCount
)

// Registration form field order.
const (
	regEmail = iota
	regUsername
	regFirstName
	regLastName
	regPassword
	regConfirm
	regFieldCount
)

// availability is the tri-state result of an availability probe.
type availability int

const (
	availUnknown availability = iota
	availFree
	availTaken
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the authentication screens.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	creds  *auth.CredentialStore

	mode   Mode
	inputs []textinput.Model
	focus  int

	rememberMe bool
	submitting bool
	errMsg     string
	infoMsg    string

	// Availability probe state. Sequence numbers let a stale debounce or a
	// stale response be recognized and dropped.
	usernameAvail availability
	emailAvail    availability
	usernameSeq   int
	emailSeq      int

	width  int
	height int
}

// New builds the authentication model starting on the sign-in form. A
// remembered email, if present, pre-fills the form with remember-me set.
func New(theme *styles.Theme, client *api.Client, creds *auth.CredentialStore) Model {
	m := Model{
		theme:  theme,
		client: client,
		creds:  creds,
		mode:   ModeLogin,
	}
	m.buildInputs()
	if remembered, ok := creds.RememberedLogin(); ok {
		m.inputs[loginEmail].SetValue(remembered)
		m.rememberMe = true
		m.focus = loginPassword
		m.applyFocus()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// buildInputs rebuilds the input set for the current mode.
func (m *Model) buildInputs() {
	count := loginFieldCount
	if m.mode == ModeRegister {
		count = regFieldCount
	}
	prev := m.inputs
	m.inputs = make([]textinput.Model, count)
	for i := range m.inputs {
		in := textinput.New()
		in.CharLimit = 128
		in.Width = 36
		m.inputs[i] = in
	}

	if m.mode == ModeLogin {
		m.inputs[loginEmail].Placeholder = "email"
		m.inputs[loginPassword].Placeholder = "password"
		m.inputs[loginPassword].EchoMode = textinput.EchoPassword
		m.inputs[loginPassword].EchoCharacter = '•'
		// Carry the email across a mode switch.
		if len(prev) > 0 {
			m.inputs[loginEmail].SetValue(prev[0].Value())
		}
	} else {
		m.inputs[regEmail].Placeholder = "email"
		m.inputs[regUsername].Placeholder = "username"
		m.inputs[regFirstName].Placeholder = "first name"
		m.inputs[regLastName].Placeholder = "last name"
		m.inputs[regPassword].Placeholder = "password"
		m.inputs[regConfirm].Placeholder = "confirm password"
		for _, i := range []int{regPassword, regConfirm} {
			m.inputs[i].EchoMode = textinput.EchoPassword
			m.inputs[i].EchoCharacter = '•'
		}
		if len(prev) > 0 {
			m.inputs[regEmail].SetValue(prev[0].Value())
		}
	}

	m.focus = 0
	m.usernameAvail = availUnknown
	m.emailAvail = availUnknown
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// fieldCount includes the virtual rows after the inputs: the remember-me
// toggle (login only) and the submit button.
func (m *Model) fieldCount() int {
	if m.mode == ModeLogin {
		return loginFieldCount + 2
	}
	return regFieldCount + 1
}

func (m *Model) onSubmitRow() bool {
	return m.focus == m.fieldCount()-1
}

func (m *Model) onRememberRow() bool {
	return m.mode == ModeLogin && m.focus == loginFieldCount
}
