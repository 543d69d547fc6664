package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Bookmarked(ctx context.Context, arg string) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	GoTo(ctx context.Context, arg string) error
	ToggleBookmark(ctx context.Context, arg string) error
	Open(ctx context.Context, arg string) error
	Chat(ctx context.Context, arg string) error
	Quiz(ctx context.Context, arg string) error
	Upload(ctx context.Context) error
	Reload(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The first token is the command; the rest of the line is its argument.
// The loop ends on EOF, on "exit"/"quit" or when ctx is done.
//
// Errors returned by handlers are ignored here: handlers report to the user
// and log on their own, which keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("rh> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch strings.ToLower(cmd) {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, bookmarked, (n)ext, (p)rev, page, bookmark, open, chat, quiz, upload, reload, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, search, (n)ext, (p)rev, page, open, chat, quiz, reload, login, exit")
			}

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, arg)

		case "bookmarked":
			_ = a.Bookmarked(ctx, arg)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev", "previous":
			_ = a.Previous(ctx)

		case "page":
			_ = a.GoTo(ctx, arg)

		case "bookmark":
			_ = a.ToggleBookmark(ctx, arg)

		case "open", "download":
			_ = a.Open(ctx, arg)

		case "chat":
			_ = a.Chat(ctx, arg)

		case "quiz":
			_ = a.Quiz(ctx, arg)

		case "upload":
			_ = a.Upload(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "login":
			_ = a.Login(ctx)

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
