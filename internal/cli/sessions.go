// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/datamock-tui/internal/export"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/util"
)

// =============================================================================
// SESSIONS COMMAND
// =============================================================================

// RunSessions dispatches the sessions subcommands: list, export and delete.
func RunSessions(rt *Runtime, args Args) int {
	switch args.Subcommand {
	case "", "list", "ls":
		return sessionsList(rt, args)
	case "export":
		return sessionsExport(rt, args)
	case "delete", "rm":
		return sessionsDelete(rt, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown sessions subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: datamock sessions [list|export <id> [csv|json]|delete <id>]")
		return 2
	}
}

func sessionsList(rt *Runtime, args Args) int {
	sessions := rt.Store.List()
	if len(sessions) == 0 {
		fmt.Println("No sessions yet. Run `datamock` or `datamock chat` to start one.")
		return 0
	}

	fmt.Printf("%-10s %-32s %9s %8s  %s\n", "ID", "TITLE", "EXCHANGES", "ARCHIVED", "UPDATED")
	for _, sess := range sessions {
		archived := ""
		if sess.Archived {
			archived = "yes"
		}
		fmt.Printf("%-10s %-32s %9d %8s  %s\n",
			shortID(sess.ID),
			util.TruncateRunes(sess.Title, 32),
			len(sess.Exchanges),
			archived,
			sess.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d session(s)\n", len(sessions))
	return 0
}

func sessionsExport(rt *Runtime, args Args) int {
	sess, code := resolveSession(rt, args.SessionID)
	if sess == nil {
		return code
	}

	records := settledRecords(sess)
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "Session has no data to export.")
		return 1
	}

	var exporter export.Exporter = export.NewCSVExporter()
	if args.Format == "json" {
		exporter = export.NewJSONExporter()
	}
	path, err := export.ExportToFile(records, exporter, &export.Options{
		OutputDir: rt.Config.ExportDir(),
		BaseName:  sess.Title,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	fmt.Printf("Exported %d record(s) to %s\n", len(records), path)
	return 0
}

func sessionsDelete(rt *Runtime, args Args) int {
	sess, code := resolveSession(rt, args.SessionID)
	if sess == nil {
		return code
	}
	if err := rt.Store.Remove(sess.ID); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	fmt.Printf("Deleted session %s (%s)\n", shortID(sess.ID), sess.Title)
	return 0
}

// resolveSession finds a session by full ID or unique prefix. Returns a nil
// session along with the exit code when resolution fails.
func resolveSession(rt *Runtime, id string) (*model.Session, int) {
	if id == "" {
		fmt.Fprintln(os.Stderr, "Error: session id required")
		return nil, 2
	}

	var matches []*model.Session
	for _, sess := range rt.Store.List() {
		if sess.ID == id {
			return sess, 0
		}
		if strings.HasPrefix(sess.ID, id) {
			matches = append(matches, sess)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], 0
	case 0:
		fmt.Fprintf(os.Stderr, "Error: no session matches %q\n", id)
		return nil, 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %q matches %d sessions, use a longer prefix\n", id, len(matches))
		return nil, 1
	}
}

// settledRecords returns the data of the newest settled exchange that
// produced any records.
func settledRecords(sess *model.Session) []*model.Record {
	for i := len(sess.Exchanges) - 1; i >= 0; i-- {
		ex := sess.Exchanges[i]
		if !ex.Generating && len(ex.Data) > 0 {
			return ex.Data
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
