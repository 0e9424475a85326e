package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	APIKey(ctx context.Context, args []string) error
	Models(ctx context.Context) error
	Templates(ctx context.Context, args []string) error
	Template(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Optimize(ctx context.Context) error
	Reset(ctx context.Context) error
}

// protected lists commands that need an authenticated session.
var protected = map[string]bool{
	"whoami":    true,
	"templates": true,
	"template":  true,
	"history":   true,
}

const (
	helpAnonymous = "Available commands: register, login, apikey [clear|show], models, optimize, reset, exit"
	helpLoggedIn  = "Available commands: whoami, logout, apikey [clear|show], models, templates [category], " +
		"template add|edit <id>|delete <id>|show <id>, history [query], history export [dir|s3], optimize, reset, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The prompt shows the status returned by statusFn. Protected commands print
// "login required" when a is not logged in. Handler errors are reported and
// the loop continues. The loop exits on EOF or on "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pm %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("login required")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "apikey":
			cmdErr = a.APIKey(ctx, args)

		case "models":
			cmdErr = a.Models(ctx)

		case "templates":
			cmdErr = a.Templates(ctx, args)

		case "template":
			cmdErr = a.Template(ctx, args)

		case "history":
			cmdErr = a.History(ctx, args)

		case "optimize":
			cmdErr = a.Optimize(ctx)

		case "reset":
			cmdErr = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}

		if ctx.Err() != nil {
			return
		}
	}
}
