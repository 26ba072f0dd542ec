// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export converts generated record sets into downloadable files.
//
// CSV is the primary format: the header row preserves first-seen field
// order across heterogeneous records, and fields a record lacks become
// empty cells. JSON export writes the records as an indented array.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// EXPORTER INTERFACE
// =============================================================================

// Exporter converts a record set to a target format.
type Exporter interface {
	// Export renders records to the target format.
	Export(records []*model.Record) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures file export.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// BaseName seeds the filename, usually the session title. Empty means
	// "export".
	BaseName string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders records with exporter and writes them to a
// timestamped file under opts.OutputDir, returning the output path.
func ExportToFile(records []*model.Record, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(records)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	base := opts.BaseName
	if base == "" {
		base = "export"
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s%s", sanitizeFilename(base), timestamp, exporter.FileExtension())

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

func sanitizeFilename(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			out = append(out, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = append(out, '_')
		case r < 32 || r == 127:
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "export"
	}
	return string(out)
}
