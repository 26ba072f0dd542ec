// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

func TestToastOrderingNewestFirst(t *testing.T) {
	m := NewToastManager()
	m.AddInfo("first")
	m.AddError("second")

	toasts := m.Active()
	if len(toasts) != 2 {
		t.Fatalf("len = %d", len(toasts))
	}
	if toasts[0].Message != "second" || toasts[1].Message != "first" {
		t.Errorf("order = %q, %q", toasts[0].Message, toasts[1].Message)
	}
}

func TestToastCap(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < maxToasts+3; i++ {
		m.AddInfo("msg")
	}
	if got := len(m.Active()); got != maxToasts {
		t.Errorf("len = %d, want %d", got, maxToasts)
	}
}

func TestToastExpiry(t *testing.T) {
	m := NewToastManager()
	id := m.AddInfo("short lived")
	// Backdate past its duration rather than sleeping.
	m.mu.Lock()
	for i := range m.toasts {
		if m.toasts[i].ID == id {
			m.toasts[i].CreatedAt = time.Now().Add(-InfoToastDuration - time.Second)
		}
	}
	m.mu.Unlock()

	if got := m.Tick(); len(got) != 0 {
		t.Errorf("expired toast survived: %+v", got)
	}
	if m.HasToasts() {
		t.Error("HasToasts after expiry")
	}
}

func TestDismiss(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("oops")
	m.AddInfo("note")

	m.Dismiss(id)
	toasts := m.Active()
	if len(toasts) != 1 || toasts[0].Message != "note" {
		t.Errorf("toasts = %+v", toasts)
	}

	m.DismissNewest()
	if m.HasToasts() {
		t.Error("expected empty after DismissNewest")
	}
	// Dismissing on empty is a no-op.
	m.DismissNewest()
	m.Dismiss(999)
}
