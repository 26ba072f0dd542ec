// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// GENERATION SPINNER
// =============================================================================

// Thinking is the spinner row shown under a prompt while its generation is
// in flight. It tracks elapsed time so long generations feel alive.
type Thinking struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
}

// NewThinking creates the spinner with ASCII-safe frames.
func NewThinking(theme *styles.Theme) Thinking {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner
	return Thinking{
		spinner: s,
		message: "Generating data",
	}
}

// Start activates the spinner and returns the tick command that drives it.
func (t *Thinking) Start() tea.Cmd {
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the spinner.
func (t *Thinking) Stop() {
	t.active = false
}

// Active reports whether the spinner is running.
func (t *Thinking) Active() bool {
	return t.active
}

// Update advances the spinner animation.
func (t *Thinking) Update(msg tea.Msg) tea.Cmd {
	if !t.active {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the spinner row, e.g. "/ Generating data (12s)".
func (t *Thinking) View(theme *styles.Theme) string {
	if !t.active {
		return ""
	}
	elapsed := time.Since(t.startTime).Round(time.Second)
	text := t.message
	if elapsed >= time.Second {
		text = fmt.Sprintf("%s (%s)", t.message, elapsed)
	}
	return t.spinner.View() + " " + theme.ThinkingText.Render(text)
}
