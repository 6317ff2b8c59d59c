package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	docmerge "github.com/alnah/go-docmerge"
)

// terminalPrompt satisfies the merge engine's password protocol on a
// terminal. Passwords are read without echo when stdin is a TTY; otherwise a
// plain line read keeps scripted use working. An empty line cancels the
// document, matching a dismissed dialog.
func terminalPrompt(env *Environment) docmerge.PasswordPrompt {
	reader := bufio.NewReader(env.Stdin)

	return func(ctx context.Context, req docmerge.PasswordRequest) (string, bool) {
		if ctx.Err() != nil {
			return "", false
		}

		if req.Attempts == 0 {
			fmt.Fprintf(env.Stderr, "%q is password protected.\n", req.Title)
		} else {
			fmt.Fprintf(env.Stderr, "Wrong password for %q (%d attempts left).\n", req.Title, req.Remaining)
		}
		fmt.Fprintf(env.Stderr, "Password (empty to skip): ")

		password, err := readPassword(env, reader)
		fmt.Fprintln(env.Stderr)
		if err != nil || password == "" {
			return "", false
		}
		return password, true
	}
}

func readPassword(env *Environment, reader *bufio.Reader) (string, error) {
	if f, ok := env.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
