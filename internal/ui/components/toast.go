// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/ui/styles"
	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastInfo is an informational toast.
	ToastInfo ToastKind = iota
	// ToastError is an error toast, shown longer so it can be read.
	ToastError
	// ToastSuccess confirms a completed action, like a finished export.
	ToastSuccess
)

// Auto-dismiss durations per kind.
const (
	InfoToastDuration    = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
	SuccessToastDuration = 4 * time.Second
)

// Toast is a non-blocking corner notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// maxToasts bounds how many toasts stack up at once.
const maxToasts = 4

// ToastManager holds the active toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

func (m *ToastManager) add(kind ToastKind, message string, d time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	toast := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
	m.nextID++
	m.toasts = append([]Toast{toast}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
	return toast.ID
}

// AddInfo adds an informational toast.
func (m *ToastManager) AddInfo(message string) int {
	return m.add(ToastInfo, message, InfoToastDuration)
}

// AddError adds an error toast.
func (m *ToastManager) AddError(message string) int {
	return m.add(ToastError, message, ErrorToastDuration)
}

// AddSuccess adds a success toast.
func (m *ToastManager) AddSuccess(message string) int {
	return m.add(ToastSuccess, message, SuccessToastDuration)
}

// Dismiss removes a toast by ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissNewest removes the most recent toast, bound to the Esc key.
func (m *ToastManager) DismissNewest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// Tick drops expired toasts and returns the survivors.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Active returns a copy of the current toasts.
func (m *ToastManager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// HasToasts reports whether any toast is visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES AND RENDERING
// =============================================================================

// ToastTickMsg drives toast expiry from the update loop.
type ToastTickMsg time.Time

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg(t)
	})
}

// RenderToasts renders the toast stack for the bottom corner of the screen.
func RenderToasts(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range toasts {
		style := theme.ToastInfo
		prefix := "i"
		switch t.Kind {
		case ToastError:
			style = theme.ToastError
			prefix = "✗"
		case ToastSuccess:
			style = theme.ToastInfo
			prefix = "✓"
		}
		line := prefix + " " + t.Message
		if width > 4 {
			line = util.TruncateWidth(line, width-4)
		}
		b.WriteString(style.Render(line))
		if i < len(toasts)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
