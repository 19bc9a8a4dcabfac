package cli

import (
	"context"
	"errors"
	"time"

	"github.com/quietpage/quietpage/internal/nav"
	"github.com/quietpage/quietpage/internal/shared"
)

// SignUp creates an account and signs it in. Registering alone does not
// establish a session; the follow-up Authenticate does.
func (a *App) SignUp(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.ids.Register(ctx, email, password, name)
	switch {
	case errors.Is(err, shared.ErrorEmailExists):
		a.say("That email is already registered. Try 'signin'.")
		return nil
	case errors.Is(err, shared.ErrorValidation):
		a.say("Email, name and password are all required.")
		return nil
	case err != nil:
		return err
	}

	if _, err := a.ids.Authenticate(ctx, user.Email, password); err != nil {
		return err
	}
	a.log.Info(ctx, "account created", "slug", user.Slug)
	a.say("Welcome, %s. Your public profile will live at %s", user.Name, nav.ProfileURL(user.Slug))
	return a.navigate(ctx, a.history.Current(), false)
}

// SignIn authenticates and re-resolves the screen. A failed attempt leaves
// the current session (and screen) untouched.
func (a *App) SignIn(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.ids.Authenticate(ctx, email, password)
	if errors.Is(err, shared.ErrorInvalidEmailPassword) {
		a.say("Wrong email or password.")
		return nil
	}
	if err != nil {
		return err
	}

	a.say("Signed in as %s.", user.Name)
	return a.navigate(ctx, a.history.Current(), false)
}

// SignOut clears the session and lands on the auth screen.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.ids.SignOut(ctx); err != nil {
		return err
	}
	a.screen = nav.AuthScreen()
	return a.render(ctx)
}

// DeleteAccount removes the account and everything it owns, shows a
// farewell banner for the configured delay, then returns to the auth
// screen. The delay is feedback only; the deletion is already done.
func (a *App) DeleteAccount(ctx context.Context) error {
	user, ok, err := a.ids.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.say("Sign in first.")
		return nil
	}
	if !Confirm(a.reader, "Delete your account, pages and published stories? This cannot be undone.", a.out) {
		a.say("Kept.")
		return nil
	}

	if err := a.ids.Delete(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "account deleted", "userId", user.ID)
	a.say("Your account is gone. Take care, %s.", user.Name)
	time.Sleep(a.config.ConfirmDelay)

	a.screen = nav.AuthScreen()
	return a.render(ctx)
}
