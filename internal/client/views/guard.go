package views

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// Guard runs before each view and decides whether the session may see it.
type Guard struct {
	session *session.Store
	auth    services.AuthService
	nav     router.Navigator
	log     logging.Logger
	now     func() time.Time
}

func NewGuard(sess *session.Store, auth services.AuthService, nav router.Navigator, log logging.Logger) *Guard {
	if log == nil {
		log = logging.NewNop()
	}
	return &Guard{
		session: sess,
		auth:    auth,
		nav:     nav,
		log:     log.With("component", "guard"),
		now:     time.Now,
	}
}

// Protect is called before a protected view. It returns true if the view
// may render; otherwise the session is anonymous and the navigator is on
// the login view.
//
// No token, or an expired JWT: anonymous. Token and user: authenticated.
// Token without user: the profile is fetched, and its outcome decides.
func (g *Guard) Protect(ctx context.Context) bool {
	if !g.session.Begin() {
		// another check is running; judge by what is known now
		return g.session.IsAuthenticated(ctx)
	}

	token := g.session.Token(ctx)
	if token != "" && session.TokenExpired(token, g.now()) {
		g.log.Info(ctx, "stored token expired")
		g.session.Logout(ctx)
		token = ""
	}
	if token == "" {
		return g.deny()
	}

	if g.session.User() != nil {
		g.session.Resolve(true)
		return true
	}

	if _, err := g.auth.Restore(ctx); err != nil {
		g.log.Warn(ctx, "profile restore failed", "error", err)
		return g.deny()
	}
	g.session.Resolve(true)
	return true
}

func (g *Guard) deny() bool {
	g.session.Resolve(false)
	if !router.IsAuthView(g.nav.Current()) {
		g.nav.Navigate(router.ViewLogin)
	}
	return false
}

// AuthView is called before the login or register view and at start-up.
// A stored token that still resolves to a profile skips the form and
// opens the post list. A token that is expired or rejected is dropped
// together with the stored user. A user record loaded from disk does not
// count as verified: the token is checked once per run. It returns true
// if it redirected.
func (g *Guard) AuthView(ctx context.Context) bool {
	token := g.session.Token(ctx)
	if token == "" || g.session.State() == session.StateAuthenticated {
		return false
	}
	if !g.session.Begin() {
		return false
	}

	if session.TokenExpired(token, g.now()) {
		g.log.Info(ctx, "stored token expired")
		return g.dropStored(ctx)
	}
	if _, err := g.auth.Restore(ctx); err != nil {
		g.log.Debug(ctx, "stored token rejected", "error", err)
		return g.dropStored(ctx)
	}
	g.session.Resolve(true)
	g.nav.Navigate(router.ViewPosts)
	return true
}

func (g *Guard) dropStored(ctx context.Context) bool {
	g.session.Logout(ctx)
	g.session.Resolve(false)
	return false
}
