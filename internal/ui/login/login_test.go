// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	creds := &auth.CredentialStore{BaseDir: t.TempDir()}
	return New(styles.NewTheme(), api.NewClient(api.Config{}), creds)
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyPress(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+t":
		msg = tea.KeyMsg{Type: tea.KeyCtrlT}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(msg)
}

func TestModeSwitchPreservesEmail(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "ana@example.com")

	m, _ = keyPress(m, "ctrl+t")
	if m.mode != ModeRegister {
		t.Fatal("expected register mode")
	}
	if got := m.inputs[regEmail].Value(); got != "ana@example.com" {
		t.Errorf("email after switch = %q", got)
	}

	m, _ = keyPress(m, "ctrl+t")
	if m.mode != ModeLogin {
		t.Fatal("expected login mode")
	}
	if got := m.inputs[loginEmail].Value(); got != "ana@example.com" {
		t.Errorf("email after switch back = %q", got)
	}
}

func TestPasswordMismatchBlocksSubmit(t *testing.T) {
	m := newTestModel(t)
	m, _ = keyPress(m, "ctrl+t")

	m.inputs[regEmail].SetValue("ana@example.com")
	m.inputs[regUsername].SetValue("ana")
	m.inputs[regPassword].SetValue("secret-one")
	m.inputs[regConfirm].SetValue("secret-two")

	m, cmd := m.submit()
	if cmd != nil {
		t.Error("mismatched passwords should not produce a submit command")
	}
	if m.errMsg != "Passwords do not match." {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.submitting {
		t.Error("should not be submitting")
	}
}

func TestTypingInvalidatesPendingProbe(t *testing.T) {
	m := newTestModel(t)
	m, _ = keyPress(m, "ctrl+t")

	// Focus the username field and type; each keystroke bumps the sequence.
	m.focus = regUsername
	m.applyFocus()
	m = typeString(m, "an")
	firstSeq := m.usernameSeq
	m = typeString(m, "a")
	if m.usernameSeq <= firstSeq {
		t.Fatal("sequence should advance with typing")
	}

	// The debounce from the earlier keystroke fires with a stale sequence.
	next, cmd := m.updateDebounce(debounceElapsedMsg{field: checkUsername, seq: firstSeq})
	if cmd != nil {
		t.Error("stale debounce must not fire a probe")
	}
	// The current sequence does fire one.
	_, cmd = next.updateDebounce(debounceElapsedMsg{field: checkUsername, seq: next.usernameSeq})
	if cmd == nil {
		t.Error("current debounce should fire a probe")
	}
}

func TestStaleAvailabilityResultDropped(t *testing.T) {
	m := newTestModel(t)
	m, _ = keyPress(m, "ctrl+t")
	m.usernameSeq = 5

	m, _ = m.updateAvailability(availabilityMsg{field: checkUsername, seq: 3, exists: true})
	if m.usernameAvail != availUnknown {
		t.Error("stale result should be dropped")
	}

	m, _ = m.updateAvailability(availabilityMsg{field: checkUsername, seq: 5, exists: true})
	if m.usernameAvail != availTaken {
		t.Error("current result should apply")
	}
}

func TestProbeErrorLeavesUnknown(t *testing.T) {
	m := newTestModel(t)
	m, _ = keyPress(m, "ctrl+t")
	m.emailSeq = 1

	m, _ = m.updateAvailability(availabilityMsg{
		field: checkEmail, seq: 1, err: api.ErrUnauthorized,
	})
	if m.emailAvail != availUnknown {
		t.Error("probe failure must leave availability unknown")
	}
}

func TestRememberToggle(t *testing.T) {
	m := newTestModel(t)
	m.focus = loginFieldCount // remember-me row
	if !m.onRememberRow() {
		t.Fatal("focus should be on remember row")
	}
	m, _ = keyPress(m, " ")
	if !m.rememberMe {
		t.Error("space should toggle remember-me on")
	}
	m, _ = keyPress(m, " ")
	if m.rememberMe {
		t.Error("space should toggle remember-me off")
	}
}

func TestRememberedEmailPrefillsForm(t *testing.T) {
	creds := &auth.CredentialStore{BaseDir: t.TempDir()}
	if err := creds.SetRememberedLogin("ana@example.com"); err != nil {
		t.Fatal(err)
	}
	m := New(styles.NewTheme(), api.NewClient(api.Config{}), creds)
	if got := m.inputs[loginEmail].Value(); got != "ana@example.com" {
		t.Errorf("prefilled email = %q", got)
	}
	if !m.rememberMe {
		t.Error("remember-me should start on")
	}
	if m.focus != loginPassword {
		t.Error("focus should start on password")
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	m := newTestModel(t)
	m.submitting = true
	m, _ = m.updateLoginResult(loginResultMsg{err: &api.ClientError{
		Type: api.ErrTypeAuth, Message: "Incorrect email or password",
	}})
	if m.submitting {
		t.Error("submitting should clear")
	}
	if m.errMsg != "Incorrect email or password" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	m, _ = keyPress(m, "ctrl+t")
	m.inputs[regEmail].SetValue("ana@example.com")
	m.submitting = true

	m, _ = m.updateRegisterResult(registerResultMsg{})
	if m.mode != ModeLogin {
		t.Fatal("expected login mode after registration")
	}
	if got := m.inputs[loginEmail].Value(); got != "ana@example.com" {
		t.Errorf("email = %q", got)
	}
	if m.infoMsg == "" {
		t.Error("expected confirmation message")
	}
}
