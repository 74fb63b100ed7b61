package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	FederatedLogin(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Post(ctx context.Context) error
	Feed(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the MarketFeed CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or
// "quit". Command handlers prompt through the same reader, so piped input
// is consumed in order.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                   show available commands
//	  - feed | f               list posts, newest first
//	  - post                   compose a post
//	  - like <id>              toggle like on a post
//	  - comment <id> [text]    comment on a post
//	  - exit | quit            leave the program
//
//	Not logged in:
//	  - signup                 create an account
//	  - login                  authenticate with a password
//	  - federated [token]      sign in through the widget, or with a token
//
//	Logged in:
//	  - whoami                 show the current user
//	  - profile                change name or email
//	  - avatar <path>          set the avatar from an image file
//	  - logout                 log out
//	  - delete-account         remove the account and log out
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(prompt(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		if !execLine(ctx, a, line) {
			return
		}
		if err != nil {
			return
		}
	}
}

func prompt(status string) string {
	if status == "" {
		return "mf> "
	}
	return "mf " + status + "> "
}

// execLine runs one command line and reports whether the loop should go on.
func execLine(ctx context.Context, a execIface, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: (f)eed, post, like, comment, whoami, profile, avatar, logout, delete-account, exit")
		} else {
			printlnFn("Available commands: signup, login, federated, (f)eed, post, like, comment, exit")
		}

	case "signup":
		_ = a.Signup(ctx)

	case "login":
		_ = a.Login(ctx)

	case "federated":
		_ = a.FederatedLogin(ctx, args)

	case "logout":
		_ = a.Logout(ctx)

	case "delete-account":
		_ = a.DeleteAccount(ctx)

	case "whoami":
		_ = a.WhoAmI(ctx)

	case "profile":
		_ = a.EditProfile(ctx)

	case "avatar":
		_ = a.Avatar(ctx, args)

	case "post":
		_ = a.Post(ctx)

	case "f", "feed":
		_ = a.Feed(ctx)

	case "like":
		_ = a.Like(ctx, args)

	case "comment":
		_ = a.Comment(ctx, args)

	case "exit", "quit":
		printlnFn("Bye!")
		return false

	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}
