package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to. App
// satisfies it; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SearchOnce(ctx context.Context, query string) error
	SearchInteractive(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a command per line and dispatches on the first token.
// "search" with arguments runs a one-shot query; bare "search" enters the
// interactive debounced mode. The loop exits on EOF or exit/quit.
//
// Errors from command handlers are not re-reported here; handlers print
// their own messages, which keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mall %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search [text], whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, search [text], exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "search":
			if len(args) > 0 {
				_ = a.SearchOnce(ctx, strings.Join(args, " "))
			} else {
				_ = a.SearchInteractive(ctx)
			}

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) root(ctx context.Context) {
	printlnFn("Welcome to the mcom-mall storefront (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
