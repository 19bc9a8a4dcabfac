package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn(ctx context.Context) bool

	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	List(ctx context.Context) error
	New(ctx context.Context, title string) error
	Open(ctx context.Context, ref string) error
	Write(ctx context.Context) error
	Rename(ctx context.Context, title string) error
	DeleteNote(ctx context.Context, ref string) error
	Search(ctx context.Context, query string) error

	Publish(ctx context.Context, ref string) error
	Unpublish(ctx context.Context, ref string) error
	Read(ctx context.Context, sortArg string) error
	Story(ctx context.Context, ref string) error
	Published(ctx context.Context) error

	Profile(ctx context.Context) error
	SetName(ctx context.Context, name string) error
	SetBio(ctx context.Context, bio string) error
	ToggleDark(ctx context.Context) error
	Export(ctx context.Context, path string) error

	Visit(ctx context.Context, raw string) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Home(ctx context.Context) error
}

const helpSignedOut = "Available commands: signup, signin, visit <url>, back, forward, home, exit"

const helpSignedIn = `Available commands:
  list                 your pages            new <title>     create a page
  open <n|id>          open a page           write           replace its content
  rename <title>       retitle it            delete [n|id]   delete it
  search <text>        search your pages
  publish [n|id]       publish a page        unpublish [n|id] take it down
  read [recent|author] all published stories story <n|id>    read one story
  published            your public profile   profile         account settings
  name <name>          change display name   bio <text>      change bio
  dark                 toggle dark mode      export <path>   download your data
  visit <url>          follow a link         back / forward / home
  signout              sign out              deleteaccount   delete everything
  exit                 leave`

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// The reader must be the same one the command prompts read from, so that
// buffered-ahead input is never lost between the loop and a prompt.
//
// Handlers surface expected failures (validation, misses, auth) as inline
// messages themselves; errors returned here are unexpected ones and are
// printed, never fatal.
func runREPL(ctx context.Context, a execIface, statusFn func(ctx context.Context) string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("qp %s> ", statusFn(ctx)))
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		rest := strings.Join(parts[1:], " ")

		var err error
		switch cmd {
		case "exit", "quit":
			return

		case "help":
			if a.isSignedIn(ctx) {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "signup":
			err = a.SignUp(ctx)
		case "signin":
			err = a.SignIn(ctx)
		case "signout":
			err = a.SignOut(ctx)
		case "deleteaccount":
			err = a.DeleteAccount(ctx)

		case "list", "l":
			err = a.List(ctx)
		case "new":
			err = a.New(ctx, rest)
		case "open":
			err = a.Open(ctx, rest)
		case "write":
			err = a.Write(ctx)
		case "rename":
			err = a.Rename(ctx, rest)
		case "delete":
			err = a.DeleteNote(ctx, rest)
		case "search":
			err = a.Search(ctx, rest)

		case "publish":
			err = a.Publish(ctx, rest)
		case "unpublish":
			err = a.Unpublish(ctx, rest)
		case "read":
			err = a.Read(ctx, rest)
		case "story":
			err = a.Story(ctx, rest)
		case "published":
			err = a.Published(ctx)

		case "profile":
			err = a.Profile(ctx)
		case "name":
			err = a.SetName(ctx, rest)
		case "bio":
			err = a.SetBio(ctx, rest)
		case "dark":
			err = a.ToggleDark(ctx)
		case "export":
			err = a.Export(ctx, rest)

		case "visit":
			err = a.Visit(ctx, rest)
		case "back":
			err = a.Back(ctx)
		case "forward":
			err = a.Forward(ctx)
		case "home":
			err = a.Home(ctx)

		default:
			printlnFn(fmt.Sprintf("Unknown command: %s (type 'help')", cmd))
		}

		if err != nil {
			printlnFn(fmt.Sprintf("error: %v", err))
		}
		if readErr != nil {
			return
		}
	}
}
