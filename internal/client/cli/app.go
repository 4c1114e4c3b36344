package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophblog/internal/client/client"
	"github.com/dmitrijs2005/gophblog/internal/client/config"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/client/services"
	"github.com/dmitrijs2005/gophblog/internal/client/session"
	"github.com/dmitrijs2005/gophblog/internal/client/views"
	"github.com/dmitrijs2005/gophblog/internal/filex"
	"github.com/dmitrijs2005/gophblog/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Store
	auth    services.AuthService
	posts   client.PostsAPI
	nav     *router.Router
	guard   *views.Guard
	dialog  *views.PostDialog

	// list is the open post listing, nil until "posts" or "my" is run.
	list *views.PostList

	reader *bufio.Reader
	outMu  sync.Mutex
	out    io.Writer
}

// NewApp opens the session database, restores the stored session and
// builds the API clients.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	path, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", path, "error", err)
		return nil, err
	}

	sess := session.NewStore(metadata.NewSQLiteRepository(db), log)
	sess.Hydrate(ctx)

	nav := router.New(router.ViewLogin)
	hc, err := client.NewHTTPClient(c.APIBaseURL, sess,
		client.WithTimeout(c.RequestTimeout),
		client.WithNavigator(nav),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info(ctx, "api client ready", "base_url", hc.BaseURL())

	auth := services.NewAuthService(client.NewAuthResource(hc), sess, db)
	a := newApp(c, log, sess, auth, client.NewPostsResource(hc), nav, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, sess *session.Store, auth services.AuthService,
	posts client.PostsAPI, nav *router.Router, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.NewNop()
	}
	a := &App{
		config:  c,
		log:     log,
		session: sess,
		auth:    auth,
		posts:   posts,
		nav:     nav,
		guard:   views.NewGuard(sess, auth, nav, log),
		reader:  bufio.NewReader(in),
		out:     out,
	}
	a.dialog = views.NewPostDialog(posts, views.PostDialogOptions{
		Toaster:   a,
		OnSuccess: a.onPostSaved,
		Envelope:  c.WrapContent,
	})
	nav.OnChange(func(from, to string) {
		log.Debug(context.Background(), "view changed", "from", from, "to", to)
		if to == router.ViewLogin && !router.IsAuthView(from) {
			a.println("Please log in to continue.")
		}
	})
	return a
}

// Run restores the session if possible and blocks in the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops the open listing and closes the database.
func (a *App) Close() {
	a.closeList()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated(context.Background())
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Name + " "
	}
	s += a.nav.Current()
	return fmt.Sprintf("(%s)", s)
}

// Root prints the banner, tries to resume the stored session and runs the
// REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the blog CLI (type 'help' for commands)")

	if a.guard.AuthView(ctx) {
		if u := a.session.User(); u != nil {
			a.println(fmt.Sprintf("Welcome back, %s!", u.Name))
		}
		_ = a.Posts(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.writer())
}

// Toast prints a notification. App is the views.Toaster of every
// controller it creates.
func (a *App) Toast(t views.Toast) {
	a.println(formatToast(t))
}

// Confirm asks a yes/no question on the app's input.
func (a *App) Confirm(message string) bool {
	return GetConfirmation(a.reader, message, a.writer())
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// writer serializes prompt output with asynchronous output such as
// debounced search results.
func (a *App) writer() io.Writer {
	return lockedWriter{a}
}

type lockedWriter struct{ a *App }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.a.outMu.Lock()
	defer w.a.outMu.Unlock()
	return w.a.out.Write(p)
}
