package nav

import (
	"context"
	"net/url"
)

// Resolver answers the storage lookups resolution needs. Implementations
// read from the identity and publication models; resolution itself stays
// pure.
type Resolver interface {
	// UserExists reports whether a user answers to the given slug.
	UserExists(ctx context.Context, slug string) bool

	// StoryOwnedBy reports whether the story exists and belongs to the user
	// with the given slug.
	StoryOwnedBy(ctx context.Context, slug, storyID string) bool
}

// Resolve maps the current URL query and session state to a screen. It is
// evaluated on cold load and on every history navigation event.
//
// Rules:
//  1. profile present, unresolved slug        -> NotFound
//  2. profile + story resolving to that user  -> PublicStory
//  3. profile + story that does not resolve   -> PublicProfile (fallback)
//  4. profile alone                           -> PublicProfile
//  5. no profile, session                     -> Main
//  6. no profile, no session                  -> Auth
func Resolve(ctx context.Context, query url.Values, signedIn bool, r Resolver) Screen {
	profile := query.Get("profile")
	story := query.Get("story")

	if profile != "" {
		if !r.UserExists(ctx, profile) {
			return NotFoundScreen()
		}
		if story != "" && r.StoryOwnedBy(ctx, profile, story) {
			return PublicStoryScreen(profile, story)
		}
		return PublicProfileScreen(profile)
	}

	if signedIn {
		return MainScreen()
	}
	return AuthScreen()
}

// ProfileURL renders the query string deep-linking to a public profile.
func ProfileURL(slug string) string {
	return "?profile=" + url.QueryEscape(slug)
}

// StoryURL renders the query string deep-linking to a public story.
func StoryURL(slug, storyID string) string {
	return "?profile=" + url.QueryEscape(slug) + "&story=" + url.QueryEscape(storyID)
}
