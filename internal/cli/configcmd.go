// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/datamock-tui/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// RunConfig prints the active configuration. `config path` prints only the
// config file location, `config init` writes the current settings to disk
// so they can be edited.
func RunConfig(rt *Runtime, args Args) int {
	switch args.ConfigKey {
	case "path":
		path, err := config.Path()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		fmt.Println(path)
		return 0

	case "init":
		if err := config.Save(rt.Config); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		path, _ := config.Path()
		fmt.Println("Wrote", path)
		return 0

	case "":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(rt.Config); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
		path, err := config.Path()
		if err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				fmt.Printf("# %s\n", path)
			} else {
				fmt.Printf("# %s (not written, showing defaults and overrides)\n", path)
			}
		}
		fmt.Print(buf.String())
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.ConfigKey)
		fmt.Fprintln(os.Stderr, "Usage: datamock config [path|init]")
		return 2
	}
}
