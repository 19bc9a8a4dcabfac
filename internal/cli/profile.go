package cli

import (
	"context"
	"strings"

	"github.com/quietpage/quietpage/internal/app/export"
	"github.com/quietpage/quietpage/internal/nav"
)

// Profile shows the account settings screen.
func (a *App) Profile(ctx context.Context) error {
	if !a.isSignedIn(ctx) {
		a.say("Sign in first.")
		return nil
	}
	a.screen = nav.ProfileScreen()
	return a.render(ctx)
}

// SetName changes the display name. The slug — and with it the public
// profile URL — stays as it was at registration.
func (a *App) SetName(ctx context.Context, name string) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Sign in first.")
		return nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		a.say("A name is required.")
		return nil
	}

	user.Name = name
	if err := a.ids.Update(ctx, *user); err != nil {
		return err
	}
	a.say("You are now %s. Already-published stories keep the old byline until republished.", name)
	return nil
}

// SetBio changes the profile bio. An empty argument clears it.
func (a *App) SetBio(ctx context.Context, bio string) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Sign in first.")
		return nil
	}

	user.Bio = strings.TrimSpace(bio)
	if err := a.ids.Update(ctx, *user); err != nil {
		return err
	}
	a.say("Bio updated.")
	return nil
}

// ToggleDark flips the persisted dark-mode preference.
func (a *App) ToggleDark(ctx context.Context) error {
	dark, err := a.ids.DarkMode(ctx)
	if err != nil {
		return err
	}
	if err := a.ids.SetDarkMode(ctx, !dark); err != nil {
		return err
	}
	if dark {
		a.say("Dark mode off.")
	} else {
		a.say("Dark mode on.")
	}
	return nil
}

// Export writes the account backup document to path.
func (a *App) Export(ctx context.Context, path string) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Sign in first.")
		return nil
	}
	if path == "" {
		a.say("Where to? Try: export quietpage-backup.json")
		return nil
	}

	pages, err := a.notes.List(ctx)
	if err != nil {
		return err
	}
	stories, err := a.pubs.StoriesByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}

	doc := export.Build(*user, pages, stories)
	if err := export.WriteFile(path, doc); err != nil {
		return err
	}
	a.say("Exported %d page(s) and %d published stories to %s", len(doc.Stories), len(doc.PublishedStories), path)
	return nil
}
