package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/publication"
	"github.com/quietpage/quietpage/internal/shared"
	"github.com/quietpage/quietpage/internal/textx"
)

const shortStoryWords = 10

// Publish makes a page public. Empty content blocks the publish; fewer
// than ten words warns but allows it.
func (a *App) Publish(ctx context.Context, ref string) error {
	page, err := a.pageByRef(ctx, ref)
	if errors.Is(err, shared.ErrorNotFound) {
		a.say("No such page.")
		return nil
	}
	if errors.Is(err, shared.ErrorNoSession) {
		a.say("Sign in first.")
		return nil
	}
	if err != nil {
		return err
	}

	words := textx.CountWords(page.Content)
	if words == 0 {
		a.say("There is nothing to publish yet.")
		return nil
	}
	if words < shortStoryWords {
		if !Confirm(a.reader, "This story is under 10 words. Publish anyway?", a.out) {
			a.say("Kept private.")
			return nil
		}
	}

	story, err := a.pubs.Publish(ctx, page.ID)
	if errors.Is(err, shared.ErrorEmptyContent) {
		a.say("There is nothing to publish yet.")
		return nil
	}
	if err != nil {
		return err
	}

	user, _, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "story published", "pageId", page.ID, "storyId", story.ID)
	a.say("Published. Link: %s", nav.StoryURL(identity.SlugOf(*user), story.ID))
	return a.render(ctx)
}

// Unpublish takes a story down after confirmation. The page and its view
// counter stay.
func (a *App) Unpublish(ctx context.Context, ref string) error {
	page, err := a.pageByRef(ctx, ref)
	if errors.Is(err, shared.ErrorNotFound) {
		a.say("No such page.")
		return nil
	}
	if errors.Is(err, shared.ErrorNoSession) {
		a.say("Sign in first.")
		return nil
	}
	if err != nil {
		return err
	}

	published, err := a.pubs.IsPublished(ctx, page.ID)
	if err != nil {
		return err
	}
	if !published {
		a.say("\"%s\" is not published.", page.Title)
		return nil
	}
	if !Confirm(a.reader, "Unpublish \""+page.Title+"\"?", a.out) {
		a.say("Still published.")
		return nil
	}

	if err := a.pubs.Unpublish(ctx, page.ID); err != nil {
		return err
	}
	a.say("Unpublished.")
	return a.render(ctx)
}

// Read shows the reading screen: every published story, sortable by
// recency or author name.
func (a *App) Read(ctx context.Context, sortArg string) error {
	switch sortArg {
	case "author":
		a.readingSort = publication.SortAuthor
	case "recent", "":
		a.readingSort = publication.SortRecent
	default:
		a.say("Sort by 'recent' or 'author'.")
		return nil
	}
	a.screen = nav.ReadingScreen()
	return a.render(ctx)
}

// Story opens one story. From a public profile the link is a deep link and
// pushes URL state; from the in-session reading screen it does not.
func (a *App) Story(ctx context.Context, ref string) error {
	if a.screen.Kind == nav.KindPublicProfile || a.screen.Kind == nav.KindPublicStory {
		story, err := a.profileStoryByRef(ctx, a.screen.Slug, ref)
		if err != nil {
			a.say("No such story.")
			return nil
		}
		return a.navigate(ctx, nav.StoryURL(a.screen.Slug, story.ID), true)
	}

	story, err := a.readingStoryByRef(ctx, ref)
	if err != nil {
		a.say("No such story.")
		return nil
	}
	a.screen = nav.PublishedStoryScreen(story.ID)
	return a.render(ctx)
}

// Published jumps to the author's own public profile — the same screen any
// visitor would see at that URL, history push included.
func (a *App) Published(ctx context.Context) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Sign in first.")
		return nil
	}
	return a.navigate(ctx, nav.ProfileURL(identity.SlugOf(*user)), true)
}

// readingStoryByRef resolves a reference against the reading screen's
// current ordering; numbers are list positions, anything else is an id.
func (a *App) readingStoryByRef(ctx context.Context, ref string) (*models.PublishedStory, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		stories, err := a.pubs.AllStories(ctx, a.readingSort)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > len(stories) {
			return nil, shared.ErrorNotFound
		}
		return &stories[n-1], nil
	}
	return a.pubs.StoryByID(ctx, ref)
}

// profileStoryByRef resolves a reference against one author's story list.
func (a *App) profileStoryByRef(ctx context.Context, slug, ref string) (*models.PublishedStory, error) {
	user, err := a.ids.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	stories, err := a.pubs.StoriesByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(stories) {
			return nil, shared.ErrorNotFound
		}
		return &stories[n-1], nil
	}
	for i := range stories {
		if stories[i].ID == ref {
			return &stories[i], nil
		}
	}
	return nil, shared.ErrorNotFound
}
