package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/quietpage/quietpage/internal/models"
	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/shared"
)

// pageByRef resolves a user-typed page reference: empty means the page open
// in the editor, a number within the sorted list is a position (the 1-9
// quick-access convention), anything else is an id. Page ids are themselves
// numeric timestamps, so a number beyond the list still gets the id lookup.
func (a *App) pageByRef(ctx context.Context, ref string) (*models.Page, error) {
	if ref == "" {
		if a.screen.Kind != nav.KindNoteEditor {
			return nil, shared.ErrorNotFound
		}
		return a.notes.Get(ctx, a.screen.NoteID)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		pages, err := a.notes.List(ctx)
		if err != nil {
			return nil, err
		}
		if n >= 1 && n <= len(pages) {
			return &pages[n-1], nil
		}
	}
	return a.notes.Get(ctx, ref)
}

// List shows the main screen: the private page list.
func (a *App) List(ctx context.Context) error {
	if !a.isSignedIn(ctx) {
		a.say("Sign in first.")
		return nil
	}
	a.screen = nav.MainScreen()
	return a.render(ctx)
}

// New creates a page and opens it in the editor.
func (a *App) New(ctx context.Context, title string) error {
	page, err := a.notes.Create(ctx, title)
	if errors.Is(err, shared.ErrorValidation) {
		a.say("A page needs a title.")
		return nil
	}
	if errors.Is(err, shared.ErrorNoSession) {
		a.say("Sign in first.")
		return nil
	}
	if err != nil {
		return err
	}
	a.screen = nav.NoteEditorScreen(page.ID)
	return a.render(ctx)
}

// Open opens a page in the editor.
func (a *App) Open(ctx context.Context, ref string) error {
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
	a.screen = nav.NoteEditorScreen(page.ID)
	return a.render(ctx)
}

// Write replaces the open page's content with multiline input. Empty input
// leaves the page untouched, and the prior content stays on screen.
func (a *App) Write(ctx context.Context) error {
	page, err := a.pageByRef(ctx, "")
	if errors.Is(err, shared.ErrorNotFound) {
		a.say("Open a page first.")
		return nil
	}
	if err != nil {
		return err
	}

	content, err := GetMultiline(a.reader, "Write:", a.out)
	if err != nil {
		return err
	}
	if err := a.notes.EditContent(ctx, page.ID, content); err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			a.say("(unchanged)")
			return a.render(ctx)
		}
		return err
	}
	return a.render(ctx)
}

// Rename retitles the open page. An empty title reverts to the old one.
func (a *App) Rename(ctx context.Context, title string) error {
	page, err := a.pageByRef(ctx, "")
	if errors.Is(err, shared.ErrorNotFound) {
		a.say("Open a page first.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.notes.Rename(ctx, page.ID, title); err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			a.say("(unchanged)")
			return a.render(ctx)
		}
		return err
	}
	return a.render(ctx)
}

// DeleteNote removes a page after confirmation. A published page loses its
// public story in the same stroke.
func (a *App) DeleteNote(ctx context.Context, ref string) error {
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

	prompt := "Delete \"" + page.Title + "\"?"
	if page.IsPublished {
		prompt = "Delete \"" + page.Title + "\" and its published story?"
	}
	if !Confirm(a.reader, prompt, a.out) {
		a.say("Kept.")
		return nil
	}

	if err := a.pubs.DeletePage(ctx, page.ID); err != nil {
		return err
	}
	a.screen = nav.MainScreen()
	return a.render(ctx)
}

// Search shows pages matching the query; an empty query goes back to the
// full list, like clearing the search box.
func (a *App) Search(ctx context.Context, query string) error {
	if !a.isSignedIn(ctx) {
		a.say("Sign in first.")
		return nil
	}
	if query == "" {
		a.screen = nav.MainScreen()
	} else {
		a.screen = nav.SearchScreen(query)
	}
	return a.render(ctx)
}
