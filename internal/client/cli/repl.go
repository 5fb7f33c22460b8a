package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Ride(ctx context.Context) error
	Status(ctx context.Context, id string) error
	Avatar(ctx context.Context, path string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Errors returned by commands are reported by the commands themselves. The
// loop exits on EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("qdrive%s> ", statusFn()))
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
				printlnFn("Available commands: me, ride, status <id>, avatar <file>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "me":
			_ = a.Me(ctx)

		case "ride":
			_ = a.Ride(ctx)

		case "status":
			if len(args) != 1 {
				printlnFn("Usage: status <id>")
				continue
			}
			_ = a.Status(ctx, args[0])

		case "avatar":
			if len(args) != 1 {
				printlnFn("Usage: avatar <file>")
				continue
			}
			_ = a.Avatar(ctx, args[0])

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			return
		}
	}
}
