// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/store"
	"github.com/jeranaias/datamock-tui/internal/ui/app"
	"github.com/jeranaias/datamock-tui/internal/ui/chat"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// TUI COMMAND
// =============================================================================

// RunTUI launches the full-screen interface. This is the default command.
func RunTUI(rt *Runtime, args Args) int {
	if !IsStdoutTTY() {
		fmt.Fprintln(os.Stderr, "datamock: the TUI needs a terminal; try `datamock ask <prompt>` for scripted use")
		return 2
	}

	theme := styles.NewThemeWithBackground(rt.Config.UI.Theme)
	flights := store.NewFlightTable()

	m := app.New(app.Deps{
		Theme:   theme,
		Config:  rt.Config,
		Client:  rt.Client,
		Store:   rt.Store,
		Flights: flights,
		Creds:   rt.Creds,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if rt.Config.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(m, opts...)

	// Push config file edits into the running program.
	if path, err := config.Path(); err == nil {
		if w, err := config.NewWatcher(path, func(cfg *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Config: cfg})
		}); err == nil {
			if err := w.Watch(); err == nil {
				defer w.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running datamock: %v\n", err)
		return 1
	}
	return 0
}
