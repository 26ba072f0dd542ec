// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/ui/styles"
)

// =============================================================================
// RECORD TABLE
// =============================================================================

// Column width bounds. Columns grow to fit their widest cell up to the cap,
// so one long value cannot push the rest of the table off screen.
const (
	minColWidth = 4
	maxColWidth = 32
)

// NewRecordTable builds a scrollable table for a record set. The column set
// is the union of all field names in first-seen order; cells for fields a
// record lacks render empty.
func NewRecordTable(theme *styles.Theme, records []*model.Record, height int) table.Model {
	columns := model.ColumnOrder(records)

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = clampWidth(runewidth.StringWidth(col))
	}
	rows := make([]table.Row, len(records))
	for i, rec := range records {
		row := make(table.Row, len(columns))
		for j, col := range columns {
			var cell string
			if _, ok := rec.Get(col); ok {
				cell = rec.FieldString(col)
			}
			if w := clampWidth(runewidth.StringWidth(cell)); w > widths[j] {
				widths[j] = w
			}
			row[j] = cell
		}
		rows[i] = row
	}

	cols := make([]table.Column, len(columns))
	for i, col := range columns {
		cols[i] = table.Column{Title: col, Width: widths[i]}
	}

	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = theme.TableHeader
	s.Cell = theme.TableCell
	s.Selected = theme.TableSelected
	t.SetStyles(s)
	return t
}

func clampWidth(w int) int {
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}
