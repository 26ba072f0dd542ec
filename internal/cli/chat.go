// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/config"
	"github.com/jeranaias/datamock-tui/internal/export"
	"github.com/jeranaias/datamock-tui/internal/extract"
	"github.com/jeranaias/datamock-tui/internal/model"
	"github.com/jeranaias/datamock-tui/internal/title"
)

// =============================================================================
// LINE-BASED CHAT
// =============================================================================

// tokenNamer adapts the API client to the title synthesizer's Namer
// interface with the bearer token bound.
type tokenNamer struct {
	client *api.Client
	token  string
}

func (n *tokenNamer) GenerateTitle(ctx context.Context, prompt string, sample []*model.Record) (string, error) {
	return n.client.GenerateTitle(ctx, n.token, prompt, sample)
}

// chatLine wraps liner with persistent prompt history.
type chatLine struct {
	line        *liner.State
	historyFile string
}

func newChatLine() *chatLine {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &chatLine{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

func (c *chatLine) read(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

func (c *chatLine) close() {
	if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// RunChat runs an interactive line-based chat session. Each prompt becomes
// an exchange in one saved session; :commands control the loop.
func RunChat(rt *Runtime, args Args) int {
	token, err := rt.RequireToken()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	line := newChatLine()
	defer line.close()

	fmt.Println("datamock chat - describe the data you need.")
	fmt.Println("Commands: :export [csv|json], :quit")

	var sess *model.Session
	titler := title.NewSynthesizer(&tokenNamer{client: rt.Client, token: token})

	for {
		input, err := line.read("datamock> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return 0
		}
		input = strings.TrimSpace(input)
		switch {
		case input == "":
			continue
		case input == ":quit" || input == ":q" || input == "exit":
			return 0
		case strings.HasPrefix(input, ":export"):
			chatExport(sess, strings.Fields(input)[1:], rt.Config.ExportDir())
			continue
		case strings.HasPrefix(input, ":"):
			fmt.Println("Unknown command:", input)
			continue
		}

		records, err := rt.Client.Generate(context.Background(), token, input)
		if err != nil {
			switch {
			case errors.Is(err, extract.ErrNoData):
				fmt.Println("No structured data produced. Try rephrasing the prompt.")
			default:
				fmt.Println("Error:", api.UserMessage(err))
			}
			continue
		}

		ex := model.NewExchange(input)
		ex.Settle(records)
		if sess == nil {
			sess = model.NewSession(ex)
			sess.Title = titler.Synthesize(context.Background(), input, records)
			if err := rt.Store.Create(sess); err != nil {
				fmt.Fprintln(os.Stderr, "Warning: could not save session:", err)
			}
		} else if err := rt.Store.AppendExchange(sess.ID, ex); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: could not save exchange:", err)
		}

		fmt.Print(renderTable(records))
		fmt.Printf("%d record(s)\n", len(records))
	}
}

func chatExport(sess *model.Session, args []string, dir string) {
	if sess == nil || len(sess.Exchanges) == 0 {
		fmt.Println("Nothing to export yet.")
		return
	}
	last := sess.Exchanges[len(sess.Exchanges)-1]
	if len(last.Data) == 0 {
		fmt.Println("Nothing to export yet.")
		return
	}

	var exporter export.Exporter = export.NewCSVExporter()
	if len(args) > 0 && strings.ToLower(args[0]) == "json" {
		exporter = export.NewJSONExporter()
	}
	path, err := export.ExportToFile(last.Data, exporter, &export.Options{
		OutputDir: dir,
		BaseName:  sess.Title,
	})
	if err != nil {
		fmt.Println("Export failed:", err)
		return
	}
	fmt.Println("Exported to", path)
}
