// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders markdown output with terminal styling.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display, falling
// back to the raw text if the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// IsStdoutTTY reports whether stdout is a terminal. Piped output never gets
// ANSI styling.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TABLE RENDERING
// =============================================================================

const cliMaxCellWidth = 40

// renderTable renders records as an aligned plain-text table.
func renderTable(records []*model.Record) string {
	columns := model.ColumnOrder(records)
	if len(columns) == 0 {
		return "(no data)\n"
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	cells := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			var cell string
			if _, ok := rec.Get(col); ok {
				cell = util.TruncateWidth(rec.FieldString(col), cliMaxCellWidth)
			}
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
			row[j] = cell
		}
		cells[i] = row
	}

	var b strings.Builder
	for j, col := range columns {
		b.WriteString(util.PadWidth(col, widths[j]))
		if j < len(columns)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteByte('\n')
	for j := range columns {
		b.WriteString(strings.Repeat("-", widths[j]))
		if j < len(columns)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteByte('\n')
	for _, row := range cells {
		for j, cell := range row {
			b.WriteString(util.PadWidth(cell, widths[j]))
			if j < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// renderMarkdownTable renders records as a GitHub-style markdown table.
func renderMarkdownTable(records []*model.Record) string {
	columns := model.ColumnOrder(records)
	if len(columns) == 0 {
		return "_no data_\n"
	}

	escape := func(s string) string {
		return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
	}

	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(columns, " | "))
	b.WriteString(" |\n|")
	for range columns {
		b.WriteString(" --- |")
	}
	b.WriteByte('\n')
	for _, rec := range records {
		b.WriteString("|")
		for _, col := range columns {
			var cell string
			if _, ok := rec.Get(col); ok {
				cell = escape(rec.FieldString(col))
			}
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
