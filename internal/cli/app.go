// Package cli is the terminal front end: a REPL that renders the resolved
// screen and turns commands into model mutations. It owns no domain rules;
// everything it shows is a read-only snapshot from the services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/quietpage/quietpage/internal/app/config"
	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/logging"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/notes"
	"github.com/quietpage/quietpage/internal/publication"
	"github.com/quietpage/quietpage/internal/storage"
)

// App wires the services to the REPL. One instance per process; all state
// transitions happen synchronously inside one command at a time.
type App struct {
	config *config.Config
	log    logging.Logger

	kv    storage.KeyValueStore
	ids   identity.Service
	notes notes.Service
	pubs  publication.Service

	history     *nav.History
	screen      nav.Screen
	readingSort publication.Sort

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the configured storage backend and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, parseLevel(c.LogLevel))

	kv, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening store", "err", err)
		return nil, err
	}

	ids := identity.NewService(kv)
	ns := notes.NewService(kv, ids)
	pubs := publication.NewService(kv, ids, ns)

	return &App{
		config:      c,
		log:         log,
		kv:          kv,
		ids:         ids,
		notes:       ns,
		pubs:        pubs,
		history:     nav.NewHistory(""),
		readingSort: publication.SortRecent,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}, nil
}

func openStore(ctx context.Context, c *config.Config) (storage.KeyValueStore, error) {
	switch c.Store {
	case config.BackendSQLite:
		return storage.OpenSQLiteStore(ctx, c.StorePath)
	case config.BackendFile:
		return storage.OpenFileStore(c.StorePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Store)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Run resolves the initial screen from the persisted session (a cold load
// against the empty URL) and enters the REPL. The REPL shares a.reader with
// the command prompts; a second buffer over stdin would eat input.
func (a *App) Run(ctx context.Context) error {
	defer a.kv.Close()

	if err := a.navigate(ctx, a.history.Current(), false); err != nil {
		return err
	}
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isSignedIn(ctx context.Context) bool {
	_, ok, err := a.ids.Current(ctx)
	if err != nil {
		a.log.Error(ctx, "error reading session", "err", err)
		return false
	}
	return ok
}

// status renders the prompt suffix: the signed-in name and current screen.
func (a *App) status(ctx context.Context) string {
	name := ""
	if user, ok, _ := a.ids.Current(ctx); ok {
		name = user.Name + " "
	}
	return fmt.Sprintf("%s%s", name, a.screen.Kind)
}
