package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// runInteractive runs the readline REPL: one dispatcher turn per line until
// an exit command, Ctrl+D, or an empty Ctrl+C.
func runInteractive(ctx context.Context, a *app) error {
	fmt.Println(bold("Vera " + version))
	fmt.Println(gray("Type a command and press Enter. Type 'exit' or 'quit' to leave."))
	fmt.Println(gray("Use the arrow keys to navigate command history."))
	fmt.Println()

	a.speaker.Say("Hello! I'm your voice assistant. How can I help you today?")

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".vera_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            green("you> "),
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nGoodbye!")
				return nil
			}
			continue
		} else if err == io.EOF {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		act := a.dispatcher.Handle(ctx, line)
		if act.Response != "" {
			a.speaker.Say(act.Response)
		}
		if !act.Continue {
			return nil
		}
	}
}
