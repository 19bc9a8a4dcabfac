package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpage/quietpage/internal/app/config"
	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/logging"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/notes"
	"github.com/quietpage/quietpage/internal/publication"
	"github.com/quietpage/quietpage/internal/storage"
)

// testApp drives a real App over a memory store with scripted input.
type testApp struct {
	app       *App
	in        *bytes.Buffer
	out       *bytes.Buffer
	passwords []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	kv := storage.NewMemoryStore()
	ids := identity.NewService(kv)
	ns := notes.NewService(kv, ids)
	pubs := publication.NewService(kv, ids, ns)

	in := &bytes.Buffer{}
	out := &bytes.Buffer{}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ConfirmDelay = 0

	ta := &testApp{
		app: &App{
			config:      cfg,
			log:         logging.NewTextLogger(io.Discard, slog.LevelError),
			kv:          kv,
			ids:         ids,
			notes:       ns,
			pubs:        pubs,
			history:     nav.NewHistory(""),
			readingSort: publication.SortRecent,
			reader:      bufio.NewReader(in),
			out:         out,
			now:         time.Now,
		},
		in:  in,
		out: out,
	}

	old := readPassword
	readPassword = func(fd int) ([]byte, error) {
		require.NotEmpty(t, ta.passwords, "no scripted password left")
		pw := ta.passwords[0]
		ta.passwords = ta.passwords[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })

	return ta
}

func (ta *testApp) feed(lines ...string) {
	for _, l := range lines {
		ta.in.WriteString(l + "\n")
	}
}

func (ta *testApp) password(pw string) {
	ta.passwords = append(ta.passwords, pw)
}

func (ta *testApp) signUp(t *testing.T, ctx context.Context, email, name, pw string) {
	t.Helper()
	ta.feed(email, name)
	ta.password(pw)
	require.NoError(t, ta.app.SignUp(ctx))
}

// The end-to-end walk from the product's core flow: register, fight the
// password, draft, publish a short story past the warning, and read it
// once in public.
func TestScenarioDraftToPublishedStory(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw123456")
	assert.Equal(t, nav.KindMain, a.screen.Kind)

	require.NoError(t, a.SignOut(ctx))
	assert.Equal(t, nav.KindAuth, a.screen.Kind)

	// Wrong password: session stays empty, screen stays put.
	ta.feed("a@x.com")
	ta.password("wrong")
	require.NoError(t, a.SignIn(ctx))
	assert.False(t, a.isSignedIn(ctx))
	assert.Contains(t, ta.out.String(), "Wrong email or password.")

	ta.feed("a@x.com")
	ta.password("pw123456")
	require.NoError(t, a.SignIn(ctx))
	assert.True(t, a.isSignedIn(ctx))

	require.NoError(t, a.New(ctx, "Draft"))
	require.Equal(t, nav.KindNoteEditor, a.screen.Kind)
	noteID := a.screen.NoteID

	ta.feed("five short words right here", ".")
	require.NoError(t, a.Write(ctx))

	// Under ten words: the warning fires, we publish anyway.
	ta.feed("y")
	require.NoError(t, a.Publish(ctx, ""))
	assert.Contains(t, ta.out.String(), "under 10 words")

	published, err := a.pubs.IsPublished(ctx, noteID)
	require.NoError(t, err)
	assert.True(t, published)

	stories, err := a.pubs.AllStories(ctx, publication.SortRecent)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Ann", stories[0].AuthorName)
	assert.Equal(t, "five short words right here", stories[0].Content)

	// One public read, one view.
	require.NoError(t, a.Visit(ctx, "?profile=ann&story="+stories[0].ID))
	assert.Equal(t, nav.KindPublicStory, a.screen.Kind)

	views, err := a.pubs.Views(ctx, stories[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
}

func TestPublishDeclinedOnWarning(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Tiny"))
	ta.feed("too short", ".")
	require.NoError(t, a.Write(ctx))

	ta.feed("n")
	require.NoError(t, a.Publish(ctx, ""))

	published, err := a.pubs.IsPublished(ctx, a.screen.NoteID)
	require.NoError(t, err)
	assert.False(t, published)
}

func TestPublishEmptyContentBlocked(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Empty"))
	require.NoError(t, a.Publish(ctx, ""))
	assert.Contains(t, ta.out.String(), "nothing to publish")
}

func TestDeepLinkNavigation(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Jane Q. Doe!!", "pw")
	require.NoError(t, a.New(ctx, "Hello"))
	ta.feed("a story that is certainly longer than ten words in total", ".")
	require.NoError(t, a.Write(ctx))
	require.NoError(t, a.Publish(ctx, ""))

	stories, err := a.pubs.AllStories(ctx, publication.SortRecent)
	require.NoError(t, err)
	storyID := stories[0].ID

	// The slug strips the punctuation from the name.
	require.NoError(t, a.Visit(ctx, "?profile=jane-q-doe"))
	assert.Equal(t, nav.KindPublicProfile, a.screen.Kind)

	// A story id of a different author falls back to the profile.
	require.NoError(t, a.Visit(ctx, "?profile=jane-q-doe&story=not-hers"))
	assert.Equal(t, nav.KindPublicProfile, a.screen.Kind)

	require.NoError(t, a.Visit(ctx, "?profile=jane-q-doe&story="+storyID))
	assert.Equal(t, nav.KindPublicStory, a.screen.Kind)

	require.NoError(t, a.Visit(ctx, "?profile=nobody-here"))
	assert.Equal(t, nav.KindNotFound, a.screen.Kind)

	// Browser-style back through the pushed states.
	require.NoError(t, a.Back(ctx))
	assert.Equal(t, nav.KindPublicStory, a.screen.Kind)
	require.NoError(t, a.Back(ctx))
	assert.Equal(t, nav.KindPublicProfile, a.screen.Kind)

	require.NoError(t, a.Forward(ctx))
	assert.Equal(t, nav.KindPublicStory, a.screen.Kind)

	// Home clears the query string; with a session that means Main.
	require.NoError(t, a.Home(ctx))
	assert.Equal(t, nav.KindMain, a.screen.Kind)
}

// Page ids are numeric timestamp strings, far beyond any list position, so
// the by-id form of the page commands must still resolve them.
func TestOpenPageByID(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Draft"))
	noteID := a.screen.NoteID

	require.NoError(t, a.List(ctx))
	require.Equal(t, nav.KindMain, a.screen.Kind)

	require.NoError(t, a.Open(ctx, noteID))
	assert.Equal(t, nav.KindNoteEditor, a.screen.Kind)
	assert.Equal(t, noteID, a.screen.NoteID)

	// The position form keeps working alongside.
	require.NoError(t, a.List(ctx))
	require.NoError(t, a.Open(ctx, "1"))
	assert.Equal(t, noteID, a.screen.NoteID)

	require.NoError(t, a.List(ctx))
	ta.feed("y")
	require.NoError(t, a.DeleteNote(ctx, noteID))
	pages, err := a.notes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

// The REPL and the command prompts read from one shared buffer, so a
// command's interactive input rides the same stream as the commands
// around it without anything getting buffered away.
func TestREPLSharesReaderWithPrompts(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")

	old := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	defer func() { printlnFn = old }()

	ta.feed("new Draft", "write", "hello from the stream", ".", "exit")
	runREPL(ctx, a, a.status, a.reader)

	require.Equal(t, nav.KindNoteEditor, a.screen.Kind)
	page, err := a.notes.Get(ctx, a.screen.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "hello from the stream", page.Content)
}

func TestPublishedShowsOwnPublicProfile(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.Published(ctx))
	assert.Equal(t, nav.KindPublicProfile, a.screen.Kind)
	assert.Equal(t, "ann", a.screen.Slug)
	assert.Equal(t, "profile=ann", a.history.Current())
}

func TestSearchScreen(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Groceries"))
	require.NoError(t, a.New(ctx, "Travel"))

	require.NoError(t, a.Search(ctx, "groc"))
	assert.Equal(t, nav.KindSearch, a.screen.Kind)
	assert.Contains(t, ta.out.String(), "1 result(s)")

	// An empty query clears the search.
	require.NoError(t, a.Search(ctx, ""))
	assert.Equal(t, nav.KindMain, a.screen.Kind)
}

func TestDeleteAccountFromApp(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Draft"))

	ta.feed("y")
	require.NoError(t, a.DeleteAccount(ctx))
	assert.Equal(t, nav.KindAuth, a.screen.Kind)
	assert.False(t, a.isSignedIn(ctx))
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	a := ta.app

	ta.signUp(t, ctx, "a@x.com", "Ann", "pw")
	require.NoError(t, a.New(ctx, "Draft"))

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, a.Export(ctx, path))
	assert.Contains(t, ta.out.String(), "Exported 1 page(s)")
}
