// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case debounceElapsedMsg:
		return m.updateDebounce(msg)

	case availabilityMsg:
		return m.updateAvailability(msg)

	case loginResultMsg:
		return m.updateLoginResult(msg)

	case registerResultMsg:
		return m.updateRegisterResult(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
		m.applyFocus()
		return m, nil

	case "shift+tab", "up":
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		m.applyFocus()
		return m, nil

	case "ctrl+t":
		// Switch between sign-in and registration.
		if m.mode == ModeLogin {
			m.mode = ModeRegister
		} else {
			m.mode = ModeLogin
		}
		m.errMsg = ""
		m.infoMsg = ""
		m.buildInputs()
		return m, nil

	case " ":
		if m.onRememberRow() {
			m.rememberMe = !m.rememberMe
			return m, nil
		}

	case "enter":
		if m.onRememberRow() {
			m.rememberMe = !m.rememberMe
			return m, nil
		}
		if m.onSubmitRow() || m.lastInputFocused() {
			return m.submit()
		}
		m.focus++
		m.applyFocus()
		return m, nil

	case "esc":
		m.errMsg = ""
		m.infoMsg = ""
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) lastInputFocused() bool {
	return m.focus == len(m.inputs)-1
}

// updateInputs routes msg to the focused text input and schedules
// availability probes for the register form's username and email fields.
func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}

	var beforeUser, beforeEmail string
	if m.mode == ModeRegister {
		beforeUser = m.inputs[regUsername].Value()
		beforeEmail = m.inputs[regEmail].Value()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	cmds := []tea.Cmd{cmd}

	if m.mode == ModeRegister {
		if v := m.inputs[regUsername].Value(); v != beforeUser {
			m.usernameAvail = availUnknown
			m.usernameSeq++
			if strings.TrimSpace(v) != "" {
				cmds = append(cmds, debounceCmd(checkUsername, m.usernameSeq))
			}
		}
		if v := m.inputs[regEmail].Value(); v != beforeEmail {
			m.emailAvail = availUnknown
			m.emailSeq++
			if strings.TrimSpace(v) != "" {
				cmds = append(cmds, debounceCmd(checkEmail, m.emailSeq))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateDebounce(msg debounceElapsedMsg) (Model, tea.Cmd) {
	if m.mode != ModeRegister {
		return m, nil
	}
	switch msg.field {
	case checkUsername:
		if msg.seq != m.usernameSeq {
			return m, nil
		}
		value := strings.TrimSpace(m.inputs[regUsername].Value())
		if value == "" {
			return m, nil
		}
		return m, m.checkAvailabilityCmd(checkUsername, value, msg.seq)
	case checkEmail:
		if msg.seq != m.emailSeq {
			return m, nil
		}
		value := strings.TrimSpace(m.inputs[regEmail].Value())
		if value == "" {
			return m, nil
		}
		return m, m.checkAvailabilityCmd(checkEmail, value, msg.seq)
	}
	return m, nil
}

func (m Model) updateAvailability(msg availabilityMsg) (Model, tea.Cmd) {
	// A failed probe stays unknown; registration still validates server-side.
	result := availUnknown
	if msg.err == nil {
		if msg.exists {
			result = availTaken
		} else {
			result = availFree
		}
	}
	switch msg.field {
	case checkUsername:
		if msg.seq == m.usernameSeq {
			m.usernameAvail = result
		}
	case checkEmail:
		if msg.seq == m.emailSeq {
			m.emailAvail = result
		}
	}
	return m, nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

func (m Model) submit() (Model, tea.Cmd) {
	m.errMsg = ""
	m.infoMsg = ""
	if m.mode == ModeLogin {
		email := strings.TrimSpace(m.inputs[loginEmail].Value())
		password := m.inputs[loginPassword].Value()
		if email == "" || password == "" {
			m.errMsg = "Email and password are required."
			return m, nil
		}
		m.submitting = true
		return m, m.loginCmd(email, password)
	}

	email := strings.TrimSpace(m.inputs[regEmail].Value())
	username := strings.TrimSpace(m.inputs[regUsername].Value())
	password := m.inputs[regPassword].Value()
	confirm := m.inputs[regConfirm].Value()
	switch {
	case email == "" || username == "" || password == "":
		m.errMsg = "Email, username and password are required."
		return m, nil
	case password != confirm:
		m.errMsg = "Passwords do not match."
		return m, nil
	case m.usernameAvail == availTaken:
		m.errMsg = "That username is already taken."
		return m, nil
	case m.emailAvail == availTaken:
		m.errMsg = "That email is already registered."
		return m, nil
	}

	m.submitting = true
	return m, m.registerCmd(api.RegisterRequest{
		Email:           email,
		Username:        username,
		FirstName:       strings.TrimSpace(m.inputs[regFirstName].Value()),
		LastName:        strings.TrimSpace(m.inputs[regLastName].Value()),
		Password:        password,
		ConfirmPassword: confirm,
	})
}

func (m Model) updateLoginResult(msg loginResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.errMsg = api.UserMessage(msg.err)
		return m, nil
	}

	email := strings.TrimSpace(m.inputs[loginEmail].Value())
	// Persistence failures do not block the session; worst case the user
	// logs in again next launch.
	_ = m.creds.SetToken(msg.token)
	if m.rememberMe {
		_ = m.creds.SetRememberedLogin(email)
	} else {
		_ = m.creds.ClearRememberedLogin()
	}

	identity := auth.DecodeIdentity(msg.token)
	return m, func() tea.Msg {
		return AuthenticatedMsg{Token: msg.token, Identity: identity}
	}
}

func (m Model) updateRegisterResult(msg registerResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.errMsg = api.UserMessage(msg.err)
		return m, nil
	}
	email := m.inputs[regEmail].Value()
	m.mode = ModeLogin
	m.buildInputs()
	m.inputs[loginEmail].SetValue(email)
	m.focus = loginPassword
	m.applyFocus()
	m.infoMsg = "Account created. Sign in to continue."
	return m, textinput.Blink
}
