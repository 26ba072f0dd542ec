// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// CSV EXPORTER
// =============================================================================

// CSVExporter renders records as RFC 4180 CSV. Quoting and escaping are
// handled by encoding/csv; values are stringified the same way the record
// table displays them.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) FileExtension() string { return ".csv" }
func (e *CSVExporter) MimeType() string      { return "text/csv" }

// Export writes a header row of the union of all field names in first-seen
// order, then one row per record. Fields a record lacks are empty cells.
func (e *CSVExporter) Export(records []*model.Record) ([]byte, error) {
	columns := model.ColumnOrder(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(columns))
	for i, rec := range records {
		for j, col := range columns {
			if _, ok := rec.Get(col); ok {
				row[j] = rec.FieldString(col)
			} else {
				row[j] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
