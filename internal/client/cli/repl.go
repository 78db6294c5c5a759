package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	RecoverPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	Pets(ctx context.Context) error
	UsePet(ctx context.Context, arg string) error
	NewPet(ctx context.Context) error
	EditPet(ctx context.Context) error
	PetImage(ctx context.Context, arg string) error
	Feed(ctx context.Context) error
	MyPosts(ctx context.Context) error
	More(ctx context.Context) error
	RefreshFeed(ctx context.Context) error
	NewPost(ctx context.Context) error
	EditPost(ctx context.Context, arg string) error
	DeletePost(ctx context.Context, arg string) error
	Like(ctx context.Context, arg string) error
	CommentPost(ctx context.Context, arg string) error
	DeleteComment(ctx context.Context, arg string) error
	Follow(ctx context.Context, arg string) error
	Unfollow(ctx context.Context, arg string) error
	Social(ctx context.Context, arg string) error
	Conversations(ctx context.Context) error
	Chat(ctx context.Context, arg string) error
	Send(ctx context.Context, arg string) error
	Unread(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// runREPL starts a simple read–eval–print loop for the Petbook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pb> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: pets, use <n>, newpet, editpet, petimg <file>, feed, more, refresh, myposts, post, edit <id>, del <id>, like <id>, comment <id>, delcomment <post> <comment>, follow <pet>, unfollow <pet>, social <pet>, msgs, chat <pet>, send <pet>, unread, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, recover, reset, verify, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "recover":
			_ = a.RecoverPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "verify":
			_ = a.VerifyEmail(ctx)

		case "pets":
			_ = a.Pets(ctx)

		case "use":
			_ = a.UsePet(ctx, firstArg(args))

		case "newpet":
			_ = a.NewPet(ctx)

		case "editpet":
			_ = a.EditPet(ctx)

		case "petimg":
			_ = a.PetImage(ctx, firstArg(args))

		case "f", "feed":
			_ = a.Feed(ctx)

		case "myposts":
			_ = a.MyPosts(ctx)

		case "more":
			_ = a.More(ctx)

		case "refresh":
			_ = a.RefreshFeed(ctx)

		case "post":
			_ = a.NewPost(ctx)

		case "edit":
			_ = a.EditPost(ctx, firstArg(args))

		case "del":
			_ = a.DeletePost(ctx, firstArg(args))

		case "like":
			_ = a.Like(ctx, firstArg(args))

		case "comment":
			_ = a.CommentPost(ctx, firstArg(args))

		case "delcomment":
			_ = a.DeleteComment(ctx, strings.Join(args, " "))

		case "follow":
			_ = a.Follow(ctx, firstArg(args))

		case "unfollow":
			_ = a.Unfollow(ctx, firstArg(args))

		case "social":
			_ = a.Social(ctx, firstArg(args))

		case "msgs":
			_ = a.Conversations(ctx)

		case "chat":
			_ = a.Chat(ctx, firstArg(args))

		case "send":
			_ = a.Send(ctx, firstArg(args))

		case "unread":
			_ = a.Unread(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}
