package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/client/content"
	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/client/views"
)

// Posts opens the listing of all posts on page 1.
func (a *App) Posts(ctx context.Context) error {
	if err := a.protect(ctx); err != nil {
		return err
	}
	a.nav.Navigate(router.ViewPosts)
	a.openList(ctx, 0)
	return nil
}

// MyPosts opens the listing of the session user's posts.
func (a *App) MyPosts(ctx context.Context) error {
	if err := a.protect(ctx); err != nil {
		return err
	}
	u := a.session.User()
	if u == nil {
		return ErrNotLoggedIn
	}
	a.nav.Navigate(router.ViewMyPosts)
	a.openList(ctx, u.ID)
	return nil
}

func (a *App) openList(ctx context.Context, authorID int64) {
	a.closeList()
	a.list = views.NewPostList(ctx, a.posts, views.PostListOptions{
		AuthorID:    authorID,
		PerPage:     a.config.PerPage,
		SearchDelay: a.config.SearchDebounce,
		Toaster:     a,
		Logger:      a.log,
		OnResults:   a.printList,
	})
	a.list.Load()
}

func (a *App) closeList() {
	if a.list != nil {
		a.list.Close()
		a.list = nil
	}
}

// Search filters the open listing by title. The request goes out once
// input has been quiet for the configured debounce; results print when
// they arrive.
func (a *App) Search(ctx context.Context, text string) error {
	if a.list == nil {
		if err := a.Posts(ctx); err != nil {
			return err
		}
	}
	a.list.SearchChanged(text)
	if text == "" {
		a.println("Search cleared.")
	} else {
		a.println(fmt.Sprintf("Searching for %q...", text))
	}
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	if !a.listOpen() {
		return nil
	}
	if !a.list.State().HasNext() {
		a.println("Already on the last page.")
		return nil
	}
	a.list.NextPage()
	return nil
}

func (a *App) PrevPage(ctx context.Context) error {
	if !a.listOpen() {
		return nil
	}
	if !a.list.State().HasPrev() {
		a.println("Already on the first page.")
		return nil
	}
	a.list.PrevPage()
	return nil
}

// Page jumps to page n, clamped to the known range.
func (a *App) Page(ctx context.Context, n int) error {
	if !a.listOpen() {
		return nil
	}
	a.list.SetPage(n)
	return nil
}

func (a *App) listOpen() bool {
	if a.list == nil {
		a.println("No post list open. Use 'posts' or 'my' first.")
		return false
	}
	return true
}

// Show prints one post, with edit and delete hints for its author.
func (a *App) Show(ctx context.Context, id int64) error {
	d, err := a.loadDetail(ctx, id)
	if err != nil {
		return err
	}
	a.println(formatPost(d.Post(), d.CanMutate()))
	return nil
}

func (a *App) loadDetail(ctx context.Context, id int64) (*views.PostDetail, error) {
	if err := a.protect(ctx); err != nil {
		return nil, err
	}
	a.nav.Navigate(router.ViewPost)
	d := views.NewPostDetail(a.posts, id, views.PostDetailOptions{
		Session:   a.session,
		Navigator: a.nav,
		Confirmer: a,
		Toaster:   a,
	})
	if err := d.Load(ctx); err != nil {
		a.println("Failed to load post:", d.Err())
		return nil, err
	}
	return d, nil
}

// New prompts for a title and body and creates a post.
func (a *App) New(ctx context.Context) error {
	if err := a.protect(ctx); err != nil {
		return err
	}
	a.nav.Navigate(router.ViewNewPost)
	a.dialog.Open(nil)
	defer a.dialog.Close()

	w := a.writer()
	title, err := getSimpleText(a.reader, "Title", w)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Content", w)
	if err != nil {
		return err
	}
	a.dialog.SetTitle(title)
	a.dialog.SetContent(content.FromPlainText(body))

	return a.submitDialog(ctx)
}

// Edit prompts for a new title and body of the user's own post. Empty
// input keeps the current value.
func (a *App) Edit(ctx context.Context, id int64) error {
	d, err := a.loadDetail(ctx, id)
	if err != nil {
		return err
	}
	if !d.CanMutate() {
		a.println("You can only edit your own posts.")
		return ErrNotAuthor
	}
	post := d.Post()
	a.nav.Navigate(router.ViewEditPost)
	a.dialog.Open(post)
	defer a.dialog.Close()

	w := a.writer()
	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s] (empty keeps it)", post.Title), w)
	if err != nil {
		return err
	}
	body, err := getMultiline(a.reader, "Content (empty keeps it)", w)
	if err != nil {
		return err
	}
	if title != "" {
		a.dialog.SetTitle(title)
	}
	if body != "" {
		a.dialog.SetContent(content.FromPlainText(body))
	}

	return a.submitDialog(ctx)
}

func (a *App) submitDialog(ctx context.Context) error {
	if !a.dialog.CanSubmit() {
		a.println("Title and content are required.")
		return views.ErrCannotSubmit
	}
	if a.dialog.IsEditing() {
		a.println("Updating post...")
	} else {
		a.println("Creating post...")
	}
	return a.dialog.Submit(ctx)
}

func (a *App) onPostSaved(p *models.Post) {
	a.println(fmt.Sprintf("Saved post #%d.", p.ID))
	a.nav.Navigate(router.ViewPost)
	if a.list != nil {
		a.list.Load()
	}
}

// Delete removes the user's own post after confirmation.
func (a *App) Delete(ctx context.Context, id int64) error {
	d, err := a.loadDetail(ctx, id)
	if err != nil {
		return err
	}
	if !d.CanMutate() {
		a.println("You can only delete your own posts.")
		return ErrNotAuthor
	}
	if !d.Delete(ctx) {
		return nil
	}
	if a.list != nil {
		a.list.Load()
	}
	return nil
}
