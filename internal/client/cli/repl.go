package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Forget(ctx context.Context) error
	Posts(ctx context.Context) error
	MyPosts(ctx context.Context) error
	Search(ctx context.Context, text string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Page(ctx context.Context, n int) error
	Show(ctx context.Context, id int64) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

const (
	helpAnonymous = "Available commands: register, login, whoami, forget, exit"
	helpLoggedIn  = "Available commands: posts (l)ist, search <text>, next, prev, page <n>, my, show <id>, new, edit <id>, delete <id>, whoami, logout, forget, exit"
)

// runREPL starts a simple read-eval-print loop for the blog CLI.
//
// Prompts, help and usage lines go to out, which the App serializes with
// output printed from other goroutines. It reads a line from reader,
// parses the first token as the command, and dispatches to methods on
// 'a'. Unknown commands are reported back to the user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              - show available commands
//	  - register          - create an account
//	  - login             - authenticate
//	  - exit | quit       - leave the program
//
//	Logged in:
//	  - posts | list | l  - list all posts
//	  - search <text>     - filter the list by title (debounced)
//	  - next | prev       - move between pages
//	  - page <n>          - jump to a page
//	  - my                - list your own posts
//	  - show <id>         - show one post
//	  - new               - write a post
//	  - edit <id>         - edit your post
//	  - delete <id>       - delete your post
//	  - whoami            - show the current user
//	  - logout            - log out
//	  - forget            - log out and wipe the local session database
//	  - exit | quit       - leave the program
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }
	for {
		if ctx.Err() != nil {
			return
		}
		say(fmt.Sprintf("blog> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
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
				say(helpLoggedIn)
			} else {
				say(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "forget":
			_ = a.Forget(ctx)

		case "posts", "list", "l":
			_ = a.Posts(ctx)

		case "my":
			_ = a.MyPosts(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "page":
			n, ok := intArg(args)
			if !ok {
				say("Usage: page <n>")
				continue
			}
			_ = a.Page(ctx, int(n))

		case "show", "edit", "delete":
			id, ok := intArg(args)
			if !ok {
				say(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, id)
			case "edit":
				_ = a.Edit(ctx, id)
			default:
				_ = a.Delete(ctx, id)
			}

		case "new":
			_ = a.New(ctx)

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}
	}
}

func intArg(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
