// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for datamock.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdLogin
	CmdLogout
	CmdSessions
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Ask flags
	Query    string
	Markdown bool
	CSV      bool
	JSON     bool
	Output   string

	// Sessions
	Subcommand string
	SessionID  string
	Format     string

	// Config
	ConfigKey string
	ConfigVal string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `datamock - AI tabular test data, in your terminal

Chat with the Data Mocker backend to generate structured test data, keep
the results as sessions, and export them as CSV or JSON.

USAGE:
    datamock [command] [flags]

COMMANDS:
    (none)         Launch the interactive TUI
    ask <prompt>   One-shot generation, print the data and exit
    chat           Line-based chat without the full-screen TUI
    login          Sign in and store the access token
    logout         Forget the stored access token
    sessions       List, export or delete saved sessions
    config         Show the active configuration
    version        Show version information
    help           Show this help

ASK FLAGS:
    --csv              Print CSV instead of an aligned table
    --json             Print the records as JSON
    --markdown         Render the result as a markdown table
    -o, --output FILE  Write to FILE instead of stdout

SESSIONS SUBCOMMANDS:
    sessions list
    sessions export <id> [csv|json]
    sessions delete <id>

EXAMPLES:
    datamock
    datamock login
    datamock ask "10 users with name, email and age"
    datamock ask --csv "5 invoices" -o invoices.csv
    datamock sessions list

Environment: DATAMOCK_SERVER_URL, DATAMOCK_STORAGE_BACKEND,
DATAMOCK_DATA_DIR, DATAMOCK_THEME, DATAMOCK_TIMEOUT_SECS.
Config file: ~/.datamock/config.toml
`

// PrintUsage prints the top-level help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version and build information.
func PrintVersion() {
	fmt.Printf("datamock %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses arguments into a command and its options.
func Parse() (Command, Args) {
	args := os.Args[1:]
	remaining, parsed := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "login":
		return CmdLogin, parsed

	case "logout":
		return CmdLogout, parsed

	case "session", "sessions":
		parseSessionArgs(&parsed, remaining)
		return CmdSessions, parsed

	case "config":
		if len(remaining) > 0 {
			parsed.ConfigKey = remaining[0]
		}
		return CmdConfig, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		// An unrecognized first argument is treated as an ask prompt, so
		// `datamock "5 users"` does what it looks like it does.
		parseAskArgs(&parsed, append([]string{cmd}, remaining...))
		return CmdAsk, parsed
	}
}

func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string
	for _, a := range args {
		switch a {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "--verbose":
			parsed.Verbose = true
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining, parsed
}

func parseAskArgs(args *Args, remaining []string) {
	var query []string
	for i := 0; i < len(remaining); i++ {
		switch remaining[i] {
		case "--csv":
			args.CSV = true
		case "--json":
			args.JSON = true
		case "--markdown", "--md":
			args.Markdown = true
		case "-o", "--output":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		default:
			query = append(query, remaining[i])
		}
	}
	args.Query = strings.Join(query, " ")
}

func parseSessionArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "list"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.SessionID = remaining[1]
	}
	if len(remaining) > 2 {
		args.Format = strings.ToLower(remaining[2])
	}
}
