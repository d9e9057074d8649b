// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - Login and logout command handlers.
//
// Command: login
// Short:   Sign in against the backend and store the token
//
// Command: logout
// Short:   Clear the stored token and session

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/brainsait/nphies-chat/internal/ui/styles"
)

const loginTimeout = 15 * time.Second

// HandleLogin prompts for credentials, exchanges them for a token, and
// persists it. The password prompt disables echo when stdin is a terminal.
func HandleLogin(args Args) int {
	e, err := loadEnv(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("failed to read username"))
		return 1
	}
	username = strings.TrimSpace(username)

	password, err := readPassword(reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("failed to read password"))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	defer cancel()

	if err := e.gate.Login(ctx, username, password); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(fmt.Sprintf("login failed: %v", err)))
		return 1
	}

	fmt.Println(styles.RenderSuccess(fmt.Sprintf("signed in as %s", username)))
	fmt.Println(styles.RenderInfo(fmt.Sprintf("token stored in %s", e.store.Path())))
	return 0
}

// readPassword reads a password without echo when stdin is a terminal, and
// falls back to a plain line read otherwise (piped input, tests).
func readPassword(reader *bufio.Reader) (string, error) {
	fmt.Print("Password: ")
	if IsTTY() {
		passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// HandleLogout clears the stored token and session.
func HandleLogout(args Args) int {
	e, err := loadEnv(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	if err := e.gate.Logout(); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(fmt.Sprintf("logout failed: %v", err)))
		return 1
	}

	fmt.Println(styles.RenderSuccess("signed out"))
	return 0
}
