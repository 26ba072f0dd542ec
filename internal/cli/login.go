// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jeranaias/datamock-tui/internal/api"
	"github.com/jeranaias/datamock-tui/internal/auth"
)

// =============================================================================
// LOGIN / LOGOUT COMMANDS
// =============================================================================

const loginTimeout = 15 * time.Second

// RunLogin prompts for credentials on the terminal and stores the bearer
// token on success. The password is read without echo.
func RunLogin(rt *Runtime, args Args) int {
	if token, ok := rt.Creds.Token(); ok {
		if id := auth.DecodeIdentity(token); id != nil {
			fmt.Printf("Already signed in as %s. Run `datamock logout` first to switch accounts.\n", id.DisplayName())
			return 0
		}
	}

	email, err := promptLine("Email: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if email == "" {
		fmt.Fprintln(os.Stderr, "Error: email required")
		return 2
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "Error: password required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	token, err := rt.Client.Login(ctx, email, password)
	if err != nil {
		if api.IsAuthError(err) {
			fmt.Fprintln(os.Stderr, "Error: invalid email or password")
			return 1
		}
		fmt.Fprintln(os.Stderr, "Error:", api.UserMessage(err))
		return 1
	}

	if err := rt.Creds.SetToken(token); err != nil {
		fmt.Fprintln(os.Stderr, "Error: saving token:", err)
		return 1
	}
	if err := rt.Creds.SetRememberedLogin(email); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not remember login:", err)
	}

	if id := auth.DecodeIdentity(token); id != nil {
		fmt.Printf("Signed in as %s.\n", id.DisplayName())
	} else {
		fmt.Println("Signed in.")
	}
	return 0
}

// RunLogout discards the stored bearer token.
func RunLogout(rt *Runtime, args Args) int {
	if _, ok := rt.Creds.Token(); !ok {
		fmt.Println("Not signed in.")
		return 0
	}
	if err := rt.Creds.ClearToken(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	fmt.Println("Signed out.")
	return 0
}

// promptLine reads a single trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from stdin without echoing. Falls back to
// plain line input when stdin is not a terminal (piped input, tests).
func promptPassword(label string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return promptLine(label)
	}
	fmt.Print(label)
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(passBytes)), nil
}
