// datamock TUI - chat-driven AI test data generation in your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/datamock-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Help and version need no runtime services.
	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	}

	rt, err := cli.NewRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	var code int
	switch cmd {
	case cli.CmdTUI:
		code = cli.RunTUI(rt, args)
	case cli.CmdAsk:
		code = cli.RunAsk(rt, args)
	case cli.CmdChat:
		code = cli.RunChat(rt, args)
	case cli.CmdLogin:
		code = cli.RunLogin(rt, args)
	case cli.CmdLogout:
		code = cli.RunLogout(rt, args)
	case cli.CmdSessions:
		code = cli.RunSessions(rt, args)
	case cli.CmdConfig:
		code = cli.RunConfig(rt, args)
	default:
		cli.PrintUsage()
		code = 2
	}

	if code != 0 {
		rt.Close()
		os.Exit(code)
	}
}
