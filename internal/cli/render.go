package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/textx"
	"github.com/quietpage/quietpage/internal/timex"
)

func (a *App) say(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// render draws the current screen from model snapshots. Story-detail
// screens record their view here, once per render.
func (a *App) render(ctx context.Context) error {
	switch a.screen.Kind {
	case nav.KindAuth:
		a.say("Welcome to quietpage. Type 'signin' or 'signup' to begin.")
		return nil
	case nav.KindMain:
		return a.renderMain(ctx)
	case nav.KindSearch:
		return a.renderSearch(ctx, a.screen.Query)
	case nav.KindNoteEditor:
		return a.renderEditor(ctx, a.screen.NoteID)
	case nav.KindReading:
		return a.renderReading(ctx)
	case nav.KindPublishedStory, nav.KindPublicStory:
		return a.renderStory(ctx, a.screen.StoryID)
	case nav.KindProfile:
		return a.renderProfile(ctx)
	case nav.KindPublicProfile:
		return a.renderPublicProfile(ctx, a.screen.Slug)
	case nav.KindNotFound:
		a.say("Nothing lives at this address.")
		return nil
	default:
		a.say("Nothing to show.")
		return nil
	}
}

func (a *App) renderMain(ctx context.Context) error {
	pages, err := a.notes.List(ctx)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		a.say("No pages yet. Type 'new <title>' to start writing.")
		return nil
	}
	for i, p := range pages {
		a.say("%2d. %s%s  (%s)", i+1, p.Title, publishedMark(p), timex.FormatRelative(p.Touched(), a.now()))
	}
	return nil
}

func (a *App) renderSearch(ctx context.Context, query string) error {
	results, err := a.notes.Search(ctx, query)
	if err != nil {
		return err
	}
	a.say("Search %q — %d result(s)", query, len(results))
	for i, p := range results {
		a.say("%2d. %s%s  (%s)", i+1, p.Title, publishedMark(p), timex.FormatRelative(p.Touched(), a.now()))
	}
	return nil
}

func (a *App) renderEditor(ctx context.Context, noteID string) error {
	page, err := a.notes.Get(ctx, noteID)
	if err != nil {
		// A missing note degrades to the main screen.
		a.screen = nav.MainScreen()
		a.say("That page is gone.")
		return a.render(ctx)
	}

	a.say("# %s", page.Title)
	if page.Content == "" {
		a.say("(empty — type 'write' to start)")
	} else {
		a.say("%s", page.Content)
	}
	words := textx.CountWords(page.Content)
	a.say("— %d words%s", words, textx.ReadingTime(words))
	if page.IsPublished {
		a.say("Published %s", timex.FormatRelative(page.PublishedAt, a.now()))
	}
	return nil
}

func (a *App) renderReading(ctx context.Context) error {
	stories, err := a.pubs.AllStories(ctx, a.readingSort)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		a.say("Nobody has published anything yet.")
		return nil
	}
	a.say("All stories (by %s):", a.readingSort)
	for i, st := range stories {
		views, err := a.pubs.Views(ctx, st.ID)
		if err != nil {
			return err
		}
		a.say("%2d. %s — %s  (%s, %d views)", i+1, st.Title, st.AuthorName,
			timex.FormatRelative(st.LastUpdated, a.now()), views)
	}
	return nil
}

func (a *App) renderStory(ctx context.Context, storyID string) error {
	story, err := a.pubs.StoryByID(ctx, storyID)
	if err != nil {
		// A missing story degrades to the nearest enclosing screen.
		if a.screen.Slug != "" {
			a.screen = nav.PublicProfileScreen(a.screen.Slug)
		} else {
			a.screen = nav.ReadingScreen()
		}
		a.say("That story is gone.")
		return a.render(ctx)
	}

	views, err := a.pubs.RecordView(ctx, story.ID)
	if err != nil {
		return err
	}

	a.say("# %s", story.Title)
	a.say("by %s — published %s", story.AuthorName, timex.FormatRelative(story.PublishedAt, a.now()))
	a.say("")
	a.say("%s", story.Content)
	words := textx.CountWords(story.Content)
	a.say("— %d words%s • %d views", words, textx.ReadingTime(words), views)
	return nil
}

func (a *App) renderProfile(ctx context.Context) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.screen = nav.AuthScreen()
		return a.render(ctx)
	}
	dark, err := a.ids.DarkMode(ctx)
	if err != nil {
		return err
	}

	a.say("Name:  %s", user.Name)
	a.say("Email: %s", user.Email)
	a.say("Bio:   %s", user.Bio)
	a.say("Public profile: %s", nav.ProfileURL(identity.SlugOf(*user)))
	a.say("Dark mode: %v", dark)
	return nil
}

func (a *App) renderPublicProfile(ctx context.Context, slug string) error {
	user, err := a.ids.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			a.screen = nav.NotFoundScreen()
			return a.render(ctx)
		}
		return err
	}

	a.say("%s", user.Name)
	if user.Bio != "" {
		a.say("%s", user.Bio)
	}

	stories, err := a.pubs.StoriesByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(stories) == 0 {
		a.say("No published stories.")
		return nil
	}
	for i, st := range stories {
		words := textx.CountWords(st.Content)
		a.say("%2d. %s  (%s, %d words%s)", i+1, st.Title,
			timex.FormatRelative(st.LastUpdated, a.now()), words, textx.ReadingTime(words))
	}
	a.say("Read one with 'story <n>'.")
	return nil
}

func publishedMark(p models.Page) string {
	if p.IsPublished {
		return " ✓published"
	}
	return ""
}
