package cli

import (
	"context"
	"net/url"
	"strings"

	"github.com/quietpage/quietpage/internal/identity"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/publication"
)

// storeResolver answers nav lookups from the identity and publication
// models.
type storeResolver struct {
	ids  identity.Service
	pubs publication.Service
}

func (r *storeResolver) UserExists(ctx context.Context, slug string) bool {
	_, err := r.ids.FindBySlug(ctx, slug)
	return err == nil
}

func (r *storeResolver) StoryOwnedBy(ctx context.Context, slug, storyID string) bool {
	user, err := r.ids.FindBySlug(ctx, slug)
	if err != nil {
		return false
	}
	story, err := r.pubs.StoryByID(ctx, storyID)
	if err != nil {
		return false
	}
	return story.AuthorID == user.ID
}

// navigate resolves rawQuery into a screen and renders it. URL-bearing
// transitions push history state; in-session screen changes do not come
// through here at all.
func (a *App) navigate(ctx context.Context, rawQuery string, push bool) error {
	rawQuery = normalizeQuery(rawQuery)

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		a.say("That link does not parse.")
		return nil
	}

	if push {
		a.history.Push(rawQuery)
	}
	a.screen = nav.Resolve(ctx, q, a.isSignedIn(ctx), &storeResolver{ids: a.ids, pubs: a.pubs})
	return a.render(ctx)
}

// normalizeQuery accepts a bare query string, "?query", or a full URL, and
// returns just the query portion.
func normalizeQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[i+1:]
	}
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		// A URL without a query string points home.
		return ""
	}
	return raw
}

// Visit follows a deep link, pushing it onto the history stack.
func (a *App) Visit(ctx context.Context, raw string) error {
	return a.navigate(ctx, raw, true)
}

// Back re-resolves against the previous history entry, like the browser
// back button.
func (a *App) Back(ctx context.Context) error {
	q, ok := a.history.Back()
	if !ok {
		a.say("Already at the beginning.")
		return nil
	}
	return a.navigate(ctx, q, false)
}

// Forward is the counterpart of Back.
func (a *App) Forward(ctx context.Context) error {
	q, ok := a.history.Forward()
	if !ok {
		a.say("Nothing ahead.")
		return nil
	}
	return a.navigate(ctx, q, false)
}

// Home clears the query parameters via a history push and re-resolves,
// landing on Main or Auth depending on the session.
func (a *App) Home(ctx context.Context) error {
	return a.navigate(ctx, "", true)
}
