// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/export"
	"github.com/jeranaias/datamock-tui/internal/extract"
	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk performs a one-shot generation and prints the result. Returns a
// process exit code.
func RunAsk(rt *Runtime, args Args) int {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, "usage: datamock ask <prompt>")
		return 2
	}
	token, err := rt.RequireToken()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	// Ctrl-C cancels the stream instead of killing the process abruptly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !args.Quiet && IsStdoutTTY() {
		fmt.Fprintln(os.Stderr, "Generating...")
	}
	records, err := rt.Client.Generate(ctx, token, args.Query)
	if err != nil {
		switch {
		case api.IsCancelled(err):
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return 130
		case errors.Is(err, extract.ErrNoData):
			fmt.Fprintln(os.Stderr, "No structured data produced. Try rephrasing the prompt.")
			return 1
		default:
			fmt.Fprintln(os.Stderr, "Error:", api.UserMessage(err))
			return 1
		}
	}

	return writeRecords(records, args)
}

// writeRecords renders records per the output flags, to stdout or a file.
func writeRecords(records []*model.Record, args Args) int {
	var content []byte
	var err error
	switch {
	case args.CSV:
		content, err = export.NewCSVExporter().Export(records)
	case args.JSON:
		content, err = export.NewJSONExporter().Export(records)
	case args.Markdown:
		md := renderMarkdownTable(records)
		if IsStdoutTTY() && args.Output == "" {
			md = renderMarkdown(md)
		}
		content = []byte(md)
	default:
		content = []byte(renderTable(records))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if args.Output != "" {
		if err := os.WriteFile(args.Output, content, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		if !args.Quiet {
			fmt.Printf("Wrote %d record(s) to %s\n", len(records), args.Output)
		}
		return 0
	}
	fmt.Print(string(content))
	return 0
}
