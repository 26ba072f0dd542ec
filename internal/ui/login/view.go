// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// VIEW
// =============================================================================

var loginLabels = []string{"Email", "Password"}

var registerLabels = []string{
	"Email", "Username", "First name", "Last name", "Password", "Confirm",
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to Data Mocker"
	if m.mode == ModeRegister {
		title = "Create your account"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteByte('\n')

	labels := loginLabels
	if m.mode == ModeRegister {
		labels = registerLabels
	}
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focus {
			b.WriteString(m.theme.FormFieldFocused.Render("> " + label))
		} else {
			b.WriteString(m.theme.FormLabel.Render("  " + label))
		}
		b.WriteByte('\n')
		b.WriteString("  " + in.View())
		if note := m.availabilityNote(i); note != "" {
			b.WriteString("  " + note)
		}
		b.WriteByte('\n')
	}

	if m.mode == ModeLogin {
		check := "[ ]"
		if m.rememberMe {
			check = "[x]"
		}
		row := check + " Remember me"
		if m.onRememberRow() {
			b.WriteString(m.theme.FormFieldFocused.Render("> " + row))
		} else {
			b.WriteString(m.theme.FormLabel.Render("  " + row))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	button := "Sign in"
	if m.mode == ModeRegister {
		button = "Create account"
	}
	if m.submitting {
		button = "Working..."
	}
	if m.onSubmitRow() {
		b.WriteString(m.theme.ButtonActive.Render(button))
	} else {
		b.WriteString(m.theme.ButtonInactive.Render(button))
	}
	b.WriteByte('\n')

	if m.errMsg != "" {
		b.WriteByte('\n')
		b.WriteString(m.theme.FormError.Render(m.errMsg))
		b.WriteByte('\n')
	}
	if m.infoMsg != "" {
		b.WriteByte('\n')
		b.WriteString(m.theme.SuccessStyle.Render(m.infoMsg))
		b.WriteByte('\n')
	}

	hint := "tab: next field · ctrl+t: create account · ctrl+c: quit"
	if m.mode == ModeRegister {
		hint = "tab: next field · ctrl+t: back to sign in · ctrl+c: quit"
	}
	b.WriteByte('\n')
	b.WriteString(m.theme.FormHint.Render(hint))

	box := m.theme.FormBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// availabilityNote renders the inline probe result next to the username and
// email fields on the registration form.
func (m Model) availabilityNote(field int) string {
	if m.mode != ModeRegister {
		return ""
	}
	var a availability
	switch field {
	case regUsername:
		a = m.usernameAvail
	case regEmail:
		a = m.emailAvail
	default:
		return ""
	}
	switch a {
	case availFree:
		return m.theme.SuccessStyle.Render("✓ available")
	case availTaken:
		return m.theme.ErrorStyle.Render("✗ taken")
	}
	return ""
}
