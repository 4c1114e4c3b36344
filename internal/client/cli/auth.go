package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/client/views"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNotAuthor   = errors.New("not the author of this post")
)

// Register prompts for name, email, password and its confirmation and
// creates the account. On success the new session is opened and the post
// list is shown.
func (a *App) Register(ctx context.Context) error {
	a.nav.Navigate(router.ViewRegister)
	w := a.writer()

	form := views.NewRegisterForm(a.auth, a.nav)
	var err error
	if form.Name, err = getSimpleText(a.reader, "Enter name", w); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Enter email", w); err != nil {
		return err
	}
	pw, err := getPassword(w, "Enter password")
	if err != nil {
		return err
	}
	form.Password = string(pw)
	pw, err = getPassword(w, "Repeat password")
	if err != nil {
		return err
	}
	form.PasswordConfirmation = string(pw)

	if !form.Submit(ctx) {
		a.println("Registration failed:", form.Err())
		return errors.New(form.Err())
	}
	a.greet()
	return a.Posts(ctx)
}

// Login resumes a stored session if the server still accepts it;
// otherwise it prompts for credentials.
func (a *App) Login(ctx context.Context) error {
	if a.session.IsAuthenticated(ctx) {
		a.greet()
		return a.Posts(ctx)
	}
	a.nav.Navigate(router.ViewLogin)
	if a.guard.AuthView(ctx) {
		a.greet()
		return a.Posts(ctx)
	}
	w := a.writer()

	form := views.NewLoginForm(a.auth, a.nav)
	var err error
	if form.Email, err = getSimpleText(a.reader, "Enter email", w); err != nil {
		return err
	}
	pw, err := getPassword(w, "Enter password")
	if err != nil {
		return err
	}
	form.Password = string(pw)

	if !form.Submit(ctx) {
		a.println("Login failed:", form.Err())
		return errors.New(form.Err())
	}
	a.greet()
	return a.Posts(ctx)
}

func (a *App) greet() {
	if u := a.session.User(); u != nil {
		a.println(fmt.Sprintf("Welcome, %s!", u.Name))
	}
}

// Logout forgets the session locally and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	a.closeList()
	a.auth.Logout(ctx)
	a.println("Logged out.")
	a.nav.Navigate(router.ViewLogin)
	return nil
}

// Forget logs out and wipes the local session database.
func (a *App) Forget(ctx context.Context) error {
	a.closeList()
	removed, err := a.auth.ClearLocalData(ctx)
	if err != nil {
		a.println("Could not clear local data:", err)
		return err
	}
	a.println(fmt.Sprintf("Local session data removed (%d keys).", removed))
	a.nav.Navigate(router.ViewLogin)
	return nil
}

// WhoAmI prints the session user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil || !a.session.IsAuthenticated(ctx) {
		a.println("Not logged in.")
		return ErrNotLoggedIn
	}
	a.println(fmt.Sprintf("%s <%s> (id %d)", u.Name, u.Email, u.ID))
	return nil
}

// protect runs the layout guard before a protected command.
func (a *App) protect(ctx context.Context) error {
	if !a.guard.Protect(ctx) {
		return ErrNotLoggedIn
	}
	return nil
}
