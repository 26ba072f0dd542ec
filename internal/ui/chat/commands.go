// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/datamock-tui/internal/export"
	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// COMMANDS
// =============================================================================

// generateCmd runs the full generation pipeline for one exchange. The
// context comes from the flight table, so superseding or cancelling the
// flight unwinds the request.
func (m Model) generateCmd(ctx context.Context, sessionID string, seq uint64, index int,
	prompt string, replaced *model.Exchange, wasEdit bool) tea.Cmd {
	client, token := m.deps.Client, m.token
	return func() tea.Msg {
		records, err := client.Generate(ctx, token, prompt)
		return generationDoneMsg{
			sessionID: sessionID,
			seq:       seq,
			index:     index,
			records:   records,
			err:       err,
			replaced:  replaced,
			wasEdit:   wasEdit,
		}
	}
}

// titleCmd synthesizes a session title in the background. Synthesize never
// fails; at worst it falls back to the prompt-derived title.
func (m Model) titleCmd(sessionID, prompt string, records []*model.Record) tea.Cmd {
	titler := m.deps.Titler
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return titleDoneMsg{
			sessionID: sessionID,
			title:     titler.Synthesize(ctx, prompt, records),
		}
	}
}

// exportCmd writes records to a file in the background.
func (m Model) exportCmd(records []*model.Record, exporter export.Exporter, baseName string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportToFile(records, exporter, &export.Options{
			OutputDir: m.deps.Config.ExportDir(),
			BaseName:  baseName,
		})
		return exportDoneMsg{path: path, err: err}
	}
}
